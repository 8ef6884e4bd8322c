package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
)

const internalErrorDetail = "Erro interno do servidor"

// errorStatus traduz a categoria do erro de domínio para status HTTP e código.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrTooLarge):
		return fiber.StatusRequestEntityTooLarge, "TOO_LARGE"
	case errors.Is(err, domain.ErrUnavailable):
		return fiber.StatusBadGateway, "UNAVAILABLE"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// writeError responde com dto.ErrorResponse. Erros que não são de domínio
// viram 500 sem expor a mensagem interna.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	detail := domain.Detail(err, internalErrorDetail)
	if status == fiber.StatusInternalServerError {
		detail = internalErrorDetail
		zerolog.Ctx(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("erro não tratado")
	}
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Detail: detail})
}

// badRequest responde 400 com a mensagem dada.
func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Detail: detail})
}

// ErrorHandler é o fiber.Config.ErrorHandler da API: *fiber.Error mantém código e
// mensagem; qualquer outro erro vira 500 genérico. Corpo acima do BodyLimit é
// recusado pelo servidor antes do handler e responde com a mensagem do upload.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusRequestEntityTooLarge {
			return writeError(c, domain.ErrFileTooLarge)
		}
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Detail: fe.Message})
		}
		var de *domain.Error
		if errors.As(err, &de) {
			return writeError(c, err)
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("erro não tratado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Detail: internalErrorDetail})
	}
}
