package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest entrada de POST /payments/.
type CreatePaymentRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description" validate:"max=500"`
	ContratoID  *int64          `json:"contrato_id"`
}

// PaymentResponse pagamento registrado.
type PaymentResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Status      string          `json:"status"`
	Description string          `json:"description,omitempty"`
	ContratoID  *int64          `json:"contrato_id,omitempty"`
	GatewayRef  string          `json:"gateway_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}

// PaymentWebhook notificação do gateway. Aceita a referência do gateway ou o id interno.
type PaymentWebhook struct {
	GatewayRef string `json:"gateway_ref"`
	ID         string `json:"id"`
	Status     string `json:"status" validate:"required"`
}
