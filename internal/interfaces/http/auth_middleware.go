package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// LocalUser chave de c.Locals com o *entity.User autenticado.
const LocalUser = "user"

// Authenticator resolve o usuário dono de um token. Implementado por *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// bearerToken extrai o token de "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

func unauthorized(c *fiber.Ctx, code, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Detail: detail})
}

// AuthMiddleware valida o Bearer token, carrega o usuário do repositório e o guarda em c.Locals.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "MISSING_TOKEN", "Não autenticado")
		}
		user, err := authn.Authenticate(c.UserContext(), tok)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return unauthorized(c, "INVALID_TOKEN", domain.Detail(err, "Token inválido"))
			}
			return writeError(c, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// OptionalAuth carrega o usuário quando há token válido e segue sem ele caso contrário.
func OptionalAuth(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok, ok := bearerToken(c); ok {
			if user, err := authn.Authenticate(c.UserContext(), tok); err == nil {
				c.Locals(LocalUser, user)
			}
		}
		return c.Next()
	}
}

// HeaderWebhookSecret header com o segredo compartilhado dos webhooks.
const HeaderWebhookSecret = "X-Webhook-Secret"

// WebhookAuth exige o segredo compartilhado no header X-Webhook-Secret.
// Sem segredo configurado todo webhook é recusado.
func WebhookAuth(secret string) fiber.Handler {
	want := []byte(secret)
	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(HeaderWebhookSecret))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "INVALID_WEBHOOK_SECRET", Detail: "Webhook não autorizado",
			})
		}
		return c.Next()
	}
}

// RequireRole restringe a rota aos perfis indicados. Usar depois de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return unauthorized(c, "MISSING_TOKEN", "Não autenticado")
		}
		if !access.HasRole(user, roles...) {
			return writeError(c, domain.ErrRoleDenied)
		}
		return c.Next()
	}
}

// GetUser devolve o usuário autenticado, ou nil.
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}
