package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
)

// PaymentHandler cobranças via PIX, boleto e cartão.
type PaymentHandler struct {
	uc *usecase.PaymentUseCase
}

// NewPaymentHandler constrói o handler.
func NewPaymentHandler(uc *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar pagamento
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePaymentRequest  true  "Valor, método e contrato"
// @Success      201   {object}  dto.PaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /payments/ [post]
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePaymentRequest
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Create(c.UserContext(), GetUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pagamentos
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Máximo de itens"  default(50)
// @Success      200  {array}  dto.PaymentResponse
// @Router       /payments/ [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), GetUser(c), tenantID, c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter pagamento
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do pagamento"
// @Success      200  {object}  dto.PaymentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /payments/{id} [get]
func (h *PaymentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUser(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Confirmação do gateway
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     WebhookSecret
// @Param        body  body  dto.PaymentWebhook  true  "gateway_ref ou id, e status"
// @Success      200   {object}  dto.PaymentResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var in dto.PaymentWebhook
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Webhook(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
