package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const unknownErrorMessage = "Erro desconhecido"

// APIError é uma resposta HTTP fora da faixa 2xx.
type APIError struct {
	StatusCode int
	// Detail é o campo "detail" do corpo, quando a API o envia.
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("requisição falhou com status %d", e.StatusCode)
}

// IsUnauthorized diz se err é uma resposta 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil && len(payload.Detail) > 0 {
		// detail costuma ser string; validações de framework podem mandar objeto.
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			e.Detail = s
		}
	}
	return e
}

// ErrorMessage converte err numa mensagem para o usuário: o detail da API,
// depois a mensagem do erro de transporte, por fim "Erro desconhecido".
func ErrorMessage(err error) string {
	if err == nil {
		return unknownErrorMessage
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return unknownErrorMessage
}
