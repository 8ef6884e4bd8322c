package domain

import (
	"errors"
	"fmt"
)

// Categorias de erro de domínio. A camada HTTP traduz cada uma para um status.
var (
	ErrNotFound     = errors.New("recurso não encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflito com o estado atual")
	ErrUnauthorized = errors.New("não autorizado")
	ErrForbidden    = errors.New("acesso negado")
	ErrTooLarge     = errors.New("conteúdo muito grande")
	ErrUnavailable  = errors.New("serviço externo indisponível")
)

// Error é um erro de domínio com mensagem voltada ao usuário.
// Unwrap devolve a categoria, então errors.Is(err, ErrInvalidInput) funciona.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }
func (e *Error) Unwrap() error { return e.Kind }

// Errorf cria um erro de domínio da categoria kind.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Erros com mensagem fixa reutilizados por mais de uma camada.
var (
	ErrInvalidCredentials = &Error{Kind: ErrUnauthorized, Detail: "Usuário ou senha inválidos"}
	ErrInvalidToken       = &Error{Kind: ErrUnauthorized, Detail: "Token inválido"}
	ErrInactiveUser       = &Error{Kind: ErrUnauthorized, Detail: "Usuário não autorizado"}
	ErrEmailAlreadyExists = &Error{Kind: ErrInvalidInput, Detail: "Email já cadastrado"}
	ErrCNPJAlreadyExists  = &Error{Kind: ErrConflict, Detail: "CNPJ já cadastrado"}
	ErrUserNotFound       = &Error{Kind: ErrNotFound, Detail: "Usuário não encontrado"}
	ErrTenantNotFound     = &Error{Kind: ErrNotFound, Detail: "Tenant não encontrado"}
	ErrNoTenant           = &Error{Kind: ErrInvalidInput, Detail: "Usuário não está associado a nenhum tenant"}
	ErrNoTenantAccess     = &Error{Kind: ErrForbidden, Detail: "Usuário não tem acesso a nenhum tenant"}
	ErrTenantDenied       = &Error{Kind: ErrForbidden, Detail: "Acesso negado a este tenant"}
	ErrRoleDenied         = &Error{Kind: ErrForbidden, Detail: "Acesso negado para o perfil atual"}
	ErrPreviewExpired     = &Error{Kind: ErrInvalidInput, Detail: "Preview expirado ou inválido. Faça upload novamente."}
	ErrFileNotFound       = &Error{Kind: ErrNotFound, Detail: "Arquivo não encontrado"}
	ErrImportNotFound     = &Error{Kind: ErrNotFound, Detail: "Importação não encontrada"}
	ErrPaymentNotFound    = &Error{Kind: ErrNotFound, Detail: "Pagamento não encontrado"}
	ErrDisparoNotFound    = &Error{Kind: ErrNotFound, Detail: "Disparo não encontrado"}
	ErrSegmentNotFound    = &Error{Kind: ErrNotFound, Detail: "Segmento não encontrado"}
	ErrFileTooLarge       = &Error{Kind: ErrTooLarge, Detail: "Arquivo excede o tamanho máximo permitido"}
)

// Detail devolve a mensagem de usuário de err, ou fallback quando err não é de domínio.
func Detail(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Detail
	}
	return fallback
}
