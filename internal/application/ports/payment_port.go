package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// Charge dados enviados ao gateway ao registrar uma cobrança.
type Charge struct {
	ID          string
	Amount      decimal.Decimal
	Method      string
	Description string
}

// PaymentGateway registra cobranças no gateway de pagamentos e devolve a referência externa.
type PaymentGateway interface {
	CreateCharge(ctx context.Context, charge Charge) (gatewayRef string, err error)
}
