package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// PagamentoRepository porta de persistência dos pagamentos.
type PagamentoRepository interface {
	Create(ctx context.Context, p *entity.Pagamento) error
	Update(ctx context.Context, p *entity.Pagamento) error
	GetByID(ctx context.Context, id string) (*entity.Pagamento, error)
	GetByGatewayRef(ctx context.Context, ref string) (*entity.Pagamento, error)
	// List filtra por tenant e, se userID não for nil, pelo usuário que gerou a cobrança.
	List(ctx context.Context, tenantID *int64, userID *int64, limit int) ([]*entity.Pagamento, error)
}

// ContratoPagamentos operação do contrato usada na baixa de pagamentos.
type ContratoPagamentos interface {
	// ApplyPayment soma amount ao valor pago e marca o contrato como pago quando nada mais estiver pendente.
	ApplyPayment(ctx context.Context, contratoID int64, amount decimal.Decimal, paidAt time.Time) error
}

// TxRepos repositórios ligados a uma mesma transação.
type TxRepos struct {
	Clientes    ClienteRepository
	Contratos   ContratoRepository
	Importacoes ImportacaoRepository
	Pagamentos  PagamentoRepository
	Baixas      ContratoPagamentos
}

// TxRunner executa fn dentro de uma transação; erro em fn faz rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
