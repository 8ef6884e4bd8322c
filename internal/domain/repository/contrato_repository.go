package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// ContratoAtraso contrato em aberto com os dias de atraso já calculados.
type ContratoAtraso struct {
	ContratoID     int64
	NumeroContrato string
	ClienteNome    string
	CPF            string
	Status         string
	ValorPendente  decimal.Decimal
	DiasAtraso     int
	DataVencimento time.Time
}

// ContratoRepository porta de persistência de contratos.
type ContratoRepository interface {
	Create(ctx context.Context, c *entity.Contrato) error
	Update(ctx context.Context, c *entity.Contrato) error
	GetByID(ctx context.Context, id int64) (*entity.Contrato, error)
	GetByNumero(ctx context.Context, tenantID int64, numero string) (*entity.Contrato, error)
	// ListByDaysOverdue devolve contratos não pagos cujo atraso está em [minDays, maxDays].
	ListByDaysOverdue(ctx context.Context, tenantID int64, minDays, maxDays int, today time.Time, limit int) ([]ContratoAtraso, error)
	// MarkOverdue muda para atrasado todo contrato ativo vencido antes de today.
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}
