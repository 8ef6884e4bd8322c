package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/auth"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/metrics"
)

// AuthHandler maneja login e os dados do usuário autenticado.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler constrói o handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Email"
// @Param        password  formData  string  true  "Senha"
// @Success      200  {object}  dto.TokenResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Login(c.UserContext(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.RecordLogin("invalid_credentials")
		} else {
			metrics.RecordLogin("error")
		}
		return writeError(c, err)
	}
	metrics.RecordLogin("success")
	return c.JSON(out)
}

// Me godoc
// @Summary      Usuário autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(auth.ToUserResponse(GetUser(c)))
}

// AccessStatus godoc
// @Summary      Status de acesso a dados do usuário
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.AccessStatusResponse
// @Router       /auth/me/access-status [get]
func (h *AuthHandler) AccessStatus(c *fiber.Ctx) error {
	return c.JSON(auth.AccessStatus(GetUser(c)))
}
