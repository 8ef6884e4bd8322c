package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
	"github.com/cordobafintech/cobranca-api/internal/domain"
)

// SegmentationHandler segmentos de atraso (réguas de cobrança).
type SegmentationHandler struct {
	uc *usecase.SegmentUseCase
}

// NewSegmentationHandler constrói o handler.
func NewSegmentationHandler(uc *usecase.SegmentUseCase) *SegmentationHandler {
	return &SegmentationHandler{uc: uc}
}

// Create godoc
// @Summary      Criar segmento
// @Tags         segmentation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSegmentRequest  true  "Nome e intervalo de dias"
// @Success      201   {object}  dto.SegmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /segmentation/ [post]
func (h *SegmentationHandler) Create(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CreateSegmentRequest
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), tenantID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar segmentos
// @Tags         segmentation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.SegmentResponse
// @Router       /segmentation/ [get]
func (h *SegmentationHandler) List(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetUser(c), tenantID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover segmento
// @Tags         segmentation
// @Security     BearerAuth
// @Param        id  path  int  true  "ID do segmento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /segmentation/{id} [delete]
func (h *SegmentationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUser(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Simulate godoc
// @Summary      Segmento de um número de dias em atraso
// @Tags         segmentation
// @Produce      json
// @Security     BearerAuth
// @Param        days  path  int  true  "Dias em atraso"
// @Success      200   {object}  dto.SimulateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /segmentation/simulate/{days} [get]
func (h *SegmentationHandler) Simulate(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Params("days"))
	if err != nil {
		return writeError(c, domain.Errorf(domain.ErrInvalidInput, "Dias inválidos"))
	}
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Simulate(c.UserContext(), GetUser(c), tenantID, days)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Contracts godoc
// @Summary      Contratos dentro do segmento
// @Tags         segmentation
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "ID do segmento"
// @Success      200  {array}  dto.SegmentContract
// @Router       /segmentation/{id}/contratos [get]
func (h *SegmentationHandler) Contracts(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Contracts(c.UserContext(), GetUser(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
