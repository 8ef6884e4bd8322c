package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/auth"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
)

// UserHandler cadastro e listagem de usuários.
type UserHandler struct {
	auth *auth.AuthUseCase
	uc   *usecase.UserUseCase
}

// NewUserHandler constrói o handler.
func NewUserHandler(authUC *auth.AuthUseCase, uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{auth: authUC, uc: uc}
}

// Create godoc
// @Summary      Cadastrar usuário
// @Description  Público. Perfil e tenant só são aplicados quando quem chama é diretor.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "name, email, password"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /users/ [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.auth.Register(c.UserContext(), GetUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuários
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        pagina      query  int  false  "Página"       default(1)
// @Param        por_pagina  query  int  false  "Itens/página" default(20)
// @Success      200  {array}  dto.UserResponse
// @Router       /users/ [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUser(c), pageQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
