package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Mensagens usam o nome do campo no JSON (ou no form).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// parseBody decodifica o corpo em out e valida as tags `validate`.
// Devolve a mensagem de erro para o usuário ("" quando está tudo certo).
func parseBody(c *fiber.Ctx, out any) string {
	if err := c.BodyParser(out); err != nil {
		return "Corpo da requisição inválido"
	}
	return validationMessage(validate.Struct(out))
}

// validationMessage converte o primeiro campo inválido em mensagem em português.
func validationMessage(err error) string {
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Dados inválidos"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Campo obrigatório: %s", field)
	case "email":
		return fmt.Sprintf("%s: e-mail inválido", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no mínimo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no mínimo %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s deve ter no máximo %s caracteres", field, fe.Param())
		}
		return fmt.Sprintf("%s deve ser no máximo %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", field, fe.Param())
	case "gte", "gt":
		return fmt.Sprintf("%s fora do intervalo permitido", field)
	default:
		return fmt.Sprintf("%s inválido", field)
	}
}
