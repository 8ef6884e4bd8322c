package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
)

// PlatformHandler raiz e health check.
type PlatformHandler struct {
	app     string
	version string
	docs    string
}

// NewPlatformHandler constrói o handler. docs vazio indica documentação desligada.
func NewPlatformHandler(app, version, docs string) *PlatformHandler {
	return &PlatformHandler{app: app, version: version, docs: docs}
}

// Root GET /
func (h *PlatformHandler) Root(c *fiber.Ctx) error {
	var docs *string
	if h.docs != "" {
		docs = &h.docs
	}
	return c.JSON(fiber.Map{
		"message": h.app,
		"version": h.version,
		"docs":    docs,
	})
}

// Health godoc
// @Summary      Health check
// @Tags         platform
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *PlatformHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "healthy", App: h.app, Version: h.version})
}
