package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
)

// TenantHandler maneja o cadastro de tenants (empresas de cobrança).
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

// NewTenantHandler constrói o handler.
func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// Create godoc
// @Summary      Criar tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTenantRequest  true  "Dados do tenant"
// @Success      201   {object}  dto.TenantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID do tenant"
// @Success      200  {object}  dto.TenantResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /tenants/{id} [get]
func (h *TenantHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetUser(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                      true  "ID do tenant"
// @Param        body  body  dto.UpdateTenantRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.TenantResponse
// @Router       /tenants/{id} [patch]
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateTenantRequest
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tenants
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        ativos  query  bool  false  "Somente ativos"
// @Success      200     {array}  dto.TenantResponse
// @Router       /tenants [get]
func (h *TenantHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.QueryBool("ativos", false))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Visible godoc
// @Summary      Tenants visíveis para o seletor do dashboard
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.TenantSimple
// @Router       /dashboard/tenants [get]
func (h *TenantHandler) Visible(c *fiber.Ctx) error {
	out, err := h.uc.Visible(c.UserContext(), GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
