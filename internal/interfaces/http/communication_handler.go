package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/metrics"
)

// CommunicationHandler envio de mensagens por WhatsApp, voz e SMS.
type CommunicationHandler struct {
	uc *usecase.CommunicationUseCase
}

// NewCommunicationHandler constrói o handler.
func NewCommunicationHandler(uc *usecase.CommunicationUseCase) *CommunicationHandler {
	return &CommunicationHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar mensagem
// @Description  Falha do provedor não gera erro HTTP: o disparo volta com status failed.
// @Tags         communication
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SendMessageRequest  true  "Canal, destino e mensagem"
// @Success      202   {object}  dto.DisparoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /communication/send [post]
func (h *CommunicationHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Send(c.UserContext(), GetUser(c), in)
	if err != nil {
		return writeError(c, err)
	}
	metrics.RecordDisparo(out.Channel, out.Status)
	return c.Status(fiber.StatusAccepted).JSON(out)
}

// History godoc
// @Summary      Histórico de disparos
// @Tags         communication
// @Produce      json
// @Security     BearerAuth
// @Param        channel  query  string  false  "whatsapp | voice | sms"
// @Param        limit    query  int     false  "Máximo de itens"  default(50)
// @Success      200  {array}  dto.DisparoResponse
// @Router       /communication/history [get]
func (h *CommunicationHandler) History(c *fiber.Ctx) error {
	tenantID, err := queryTenantID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.History(c.UserContext(), GetUser(c), tenantID, c.Query("channel"), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Status de entrega enviado pelo provedor
// @Tags         communication
// @Accept       json
// @Produce      json
// @Security     WebhookSecret
// @Param        body  body  dto.ProviderWebhook  true  "provider_id e status"
// @Success      200   {object}  dto.DisparoResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /communication/webhook [post]
func (h *CommunicationHandler) Webhook(c *fiber.Ctx) error {
	var in dto.ProviderWebhook
	if msg := parseBody(c, &in); msg != "" {
		return badRequest(c, msg)
	}
	out, err := h.uc.Webhook(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
