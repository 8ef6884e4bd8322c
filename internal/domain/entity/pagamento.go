package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pagamento.
const (
	MethodPix    = "pix"
	MethodBoleto = "boleto"
	MethodCard   = "card"
)

// Status de pagamento.
const (
	PaymentPending   = "pending"
	PaymentPaid      = "paid"
	PaymentFailed    = "failed"
	PaymentCancelled = "cancelled"
)

// ValidPaymentMethod informa se m é um método aceito.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodPix, MethodBoleto, MethodCard:
		return true
	}
	return false
}

// ValidPaymentStatus informa se s é um status conhecido.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentCancelled:
		return true
	}
	return false
}

// Pagamento é uma cobrança gerada para um devedor, opcionalmente ligada a um contrato.
type Pagamento struct {
	ID          string // uuid
	TenantID    *int64
	UserID      int64
	ContratoID  *int64
	Amount      decimal.Decimal
	Method      string
	Status      string
	Description string
	GatewayRef  string
	CreatedAt   time.Time
	PaidAt      *time.Time
}
