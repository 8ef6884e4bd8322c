package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var _ repository.PagamentoRepository = (*PagamentoRepo)(nil)

// PagamentoRepo cobranças geradas no gateway (usável com pool ou tx).
type PagamentoRepo struct {
	q Querier
}

// NewPagamentoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPagamentoRepository(q Querier) *PagamentoRepo {
	return &PagamentoRepo{q: q}
}

const pagamentoColumns = `id, tenant_id, user_id, contrato_id, amount, method, status, description, gateway_ref, created_at, paid_at`

// Create persiste a cobrança pendente.
func (r *PagamentoRepo) Create(ctx context.Context, p *entity.Pagamento) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO pagamentos (id, tenant_id, user_id, contrato_id, amount, method, status, description, gateway_ref, created_at, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.TenantID, p.UserID, p.ContratoID, p.Amount, p.Method, p.Status,
		nullString(p.Description), nullString(p.GatewayRef), p.CreatedAt, p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("insert pagamento: %w", err)
	}
	return nil
}

// Update grava status, referência do gateway e data de pagamento.
func (r *PagamentoRepo) Update(ctx context.Context, p *entity.Pagamento) error {
	_, err := r.q.Exec(ctx, `
		UPDATE pagamentos SET status = $2, gateway_ref = $3, paid_at = $4
		WHERE id = $1`,
		p.ID, p.Status, nullString(p.GatewayRef), p.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("update pagamento: %w", err)
	}
	return nil
}

// GetByID obtém um pagamento; travado para update quando em transação.
func (r *PagamentoRepo) GetByID(ctx context.Context, id string) (*entity.Pagamento, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+pagamentoColumns+` FROM pagamentos WHERE id = $1 FOR UPDATE`, id)
}

// GetByGatewayRef obtém o pagamento pela referência do gateway.
func (r *PagamentoRepo) GetByGatewayRef(ctx context.Context, ref string) (*entity.Pagamento, error) {
	return r.getOne(ctx, `SELECT `+pagamentoColumns+` FROM pagamentos WHERE gateway_ref = $1 FOR UPDATE`, ref)
}

func (r *PagamentoRepo) getOne(ctx context.Context, query string, arg any) (*entity.Pagamento, error) {
	p, err := scanPagamento(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pagamento: %w", err)
	}
	return p, nil
}

// List cobranças do escopo, mais recentes primeiro.
func (r *PagamentoRepo) List(ctx context.Context, tenantID *int64, userID *int64, limit int) ([]*entity.Pagamento, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+pagamentoColumns+` FROM pagamentos
		WHERE ($1::BIGINT IS NULL OR tenant_id = $1) AND ($2::BIGINT IS NULL OR user_id = $2)
		ORDER BY created_at DESC LIMIT $3`,
		nullableID(tenantID), nullableID(userID), limit)
	if err != nil {
		return nil, fmt.Errorf("list pagamentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pagamento
	for rows.Next() {
		p, err := scanPagamento(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pagamento: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPagamento(row pgx.Row) (*entity.Pagamento, error) {
	var p entity.Pagamento
	var desc, ref *string
	if err := row.Scan(&p.ID, &p.TenantID, &p.UserID, &p.ContratoID, &p.Amount, &p.Method, &p.Status,
		&desc, &ref, &p.CreatedAt, &p.PaidAt); err != nil {
		return nil, err
	}
	p.Description = strOf(desc)
	p.GatewayRef = strOf(ref)
	return &p, nil
}
