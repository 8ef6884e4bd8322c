package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CarteiraKPIs indicadores principais da carteira.
type CarteiraKPIs struct {
	TotalContratos int
	TotalDevedores int
	ValorTotal     decimal.Decimal // soma do valor original
	MediaAtraso    float64         // média de dias dos contratos atrasados já vencidos
}

// StatusCount quantidade e valor por status de contrato.
type StatusCount struct {
	Status     string
	Quantidade int
	ValorTotal decimal.Decimal
}

// GroupCount quantidade e valor por rótulo (faixa D+, faixa etária, sexo, faixa de valor).
type GroupCount struct {
	Label      string
	Quantidade int
	ValorTotal decimal.Decimal
}

// DevedorRanking devedor com maior valor pendente.
type DevedorRanking struct {
	Nome           string
	CPF            string
	TotalContratos int
	ValorPendente  decimal.Decimal
	MaxAtraso      int
}

// ClientesKPIs indicadores da análise de clientes.
type ClientesKPIs struct {
	DPlusMedio    float64
	BonsPagadores int // clientes sem contrato atrasado e com ao menos um pago
	Reincidentes  int // clientes com mais de um contrato atrasado
	Inadimplentes int // clientes com ao menos um contrato atrasado
	TicketMedio   decimal.Decimal
	IdadeMedia    float64
}

// BaseStats números da tela de base.
type BaseStats struct {
	TotalClientes     int
	TotalContratos    int
	ValorTotal        decimal.Decimal
	ClientesComAtraso int
}

// AnalyticsRepository consultas somente leitura para os dashboards.
// tenantID nil agrega todos os tenants.
type AnalyticsRepository interface {
	GetKPIs(ctx context.Context, tenantID *int64, today time.Time) (CarteiraKPIs, error)
	GetStatusDistribution(ctx context.Context, tenantID *int64) ([]StatusCount, error)
	// GetAgingBuckets agrupa nas faixas D+; "Em dia" inclui pagos e não vencidos.
	GetAgingBuckets(ctx context.Context, tenantID *int64, today time.Time) ([]GroupCount, error)
	GetTopDevedores(ctx context.Context, tenantID *int64, today time.Time, limit int) ([]DevedorRanking, error)
	GetClientesKPIs(ctx context.Context, tenantID *int64, today time.Time) (ClientesKPIs, error)
	GetAgeDistribution(ctx context.Context, tenantID *int64, today time.Time) ([]GroupCount, error)
	GetSexDistribution(ctx context.Context, tenantID *int64) ([]GroupCount, error)
	GetDefaultByValueRange(ctx context.Context, tenantID *int64) ([]GroupCount, error)
	GetBaseStats(ctx context.Context, tenantID *int64) (BaseStats, error)
	// GetRecovered soma o valor pago em contratos do escopo.
	GetRecovered(ctx context.Context, tenantID *int64) (decimal.Decimal, error)
}
