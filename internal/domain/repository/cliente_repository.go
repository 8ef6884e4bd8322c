package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// ClienteResumo linha da listagem de clientes da base, com agregados dos contratos.
type ClienteResumo struct {
	ID                 int64
	Nome               string
	CPF                string
	Telefone           string
	Email              string
	TotalContratos     int
	ContratosPagos     int
	ContratosAtrasados int
	ValorTotal         decimal.Decimal
	CreatedAt          time.Time
}

// ClienteRepository porta de persistência de clientes (devedores).
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	Update(ctx context.Context, c *entity.Cliente) error
	GetByCPF(ctx context.Context, tenantID int64, cpf string) (*entity.Cliente, error)
	// FindIDsByCPF devolve cpf -> id para os CPFs que já existem no tenant.
	FindIDsByCPF(ctx context.Context, tenantID int64, cpfs []string) (map[string]int64, error)
	// ListResumo busca por nome ou CPF (ilike), ordenado por nome, e devolve o total.
	ListResumo(ctx context.Context, tenantID *int64, busca string, limit, offset int) ([]ClienteResumo, int, error)
}
