package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/cordobafintech/cobranca-api/internal/application/analytics"
)

// DashboardHandler maneja os endpoints de dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Principal godoc
// @Summary      Dashboard principal da carteira
// @Description  Diretor vê o tenant pedido ou todos; demais perfis veem apenas o próprio tenant.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        tenant_id  query  int  false  "Tenant (somente diretor)"
// @Success      200  {object}  dto.DashboardPrincipal
// @Router       /dashboard/principal [get]
func (h *DashboardHandler) Principal(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Principal(c.UserContext(), GetUser(c), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Consolidado godoc
// @Summary      Dashboard consolidado de todos os tenants ativos
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardConsolidado
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /dashboard/principal/consolidado [get]
func (h *DashboardHandler) Consolidado(c *fiber.Ctx) error {
	out, err := h.uc.Consolidado(c.UserContext(), GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AnaliseClientes godoc
// @Summary      Análise de perfil dos clientes
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        tenant_id  query  int  false  "Tenant (somente diretor)"
// @Success      200  {object}  dto.DashboardAnaliseClientes
// @Router       /dashboard/analise-clientes [get]
func (h *DashboardHandler) AnaliseClientes(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.AnaliseClientes(c.UserContext(), GetUser(c), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Base devolve o resumo do usuário. GET /dashboard/
func (h *DashboardHandler) Base(c *fiber.Ctx) error {
	return c.JSON(h.uc.Base(GetUser(c)))
}

// Operator devolve os números do operador. GET /dashboard/operator
func (h *DashboardHandler) Operator(c *fiber.Ctx) error {
	out, err := h.uc.Operator(c.UserContext(), GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Manager devolve os números do gerente. GET /dashboard/manager
func (h *DashboardHandler) Manager(c *fiber.Ctx) error {
	out, err := h.uc.Manager(c.UserContext(), GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Director devolve os números do diretor. GET /dashboard/director
func (h *DashboardHandler) Director(c *fiber.Ctx) error {
	out, err := h.uc.Director(c.UserContext(), GetUser(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
