package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var (
	_ repository.ContratoRepository = (*ContratoRepo)(nil)
	_ repository.ContratoPagamentos = (*ContratoRepo)(nil)
)

// ContratoRepo implementação do ContratoRepository (usável com pool ou tx).
type ContratoRepo struct {
	q Querier
}

// NewContratoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewContratoRepository(q Querier) *ContratoRepo {
	return &ContratoRepo{q: q}
}

const contratoColumns = `id, numero_contrato, tenant_id, cliente_id, valor_original, valor_atualizado, valor_pago,
	data_contrato, data_vencimento, data_pagamento, status, created_at, updated_at`

// Create persiste um novo contrato.
func (r *ContratoRepo) Create(ctx context.Context, c *entity.Contrato) error {
	query := `
		INSERT INTO contratos (numero_contrato, tenant_id, cliente_id, valor_original, valor_atualizado,
			valor_pago, data_contrato, data_vencimento, data_pagamento, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		c.NumeroContrato, c.TenantID, c.ClienteID, c.ValorOriginal, c.ValorAtualizado,
		c.ValorPago, c.DataContrato, c.DataVencimento, c.DataPagamento, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrConflict, "Contrato %s já cadastrado", c.NumeroContrato)
		}
		return fmt.Errorf("insert contrato: %w", err)
	}
	return nil
}

// Update grava valores, datas e status.
func (r *ContratoRepo) Update(ctx context.Context, c *entity.Contrato) error {
	query := `
		UPDATE contratos SET
			cliente_id = $2, valor_original = $3, valor_atualizado = $4, valor_pago = $5,
			data_contrato = $6, data_vencimento = $7, data_pagamento = $8, status = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		c.ID, c.ClienteID, c.ValorOriginal, c.ValorAtualizado, c.ValorPago,
		c.DataContrato, c.DataVencimento, c.DataPagamento, c.Status,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update contrato: %w", err)
	}
	return nil
}

// GetByID obtém um contrato por ID.
func (r *ContratoRepo) GetByID(ctx context.Context, id int64) (*entity.Contrato, error) {
	return r.getOne(ctx, `SELECT `+contratoColumns+` FROM contratos WHERE id = $1`, id)
}

// GetByNumero obtém o contrato do tenant pelo número.
func (r *ContratoRepo) GetByNumero(ctx context.Context, tenantID int64, numero string) (*entity.Contrato, error) {
	return r.getOne(ctx, `SELECT `+contratoColumns+` FROM contratos WHERE tenant_id = $1 AND numero_contrato = $2`, tenantID, numero)
}

func (r *ContratoRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Contrato, error) {
	c, err := scanContrato(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get contrato: %w", err)
	}
	return c, nil
}

// ListByDaysOverdue lista contratos em aberto com atraso dentro do intervalo, mais atrasados primeiro.
func (r *ContratoRepo) ListByDaysOverdue(ctx context.Context, tenantID int64, minDays, maxDays int, today time.Time, limit int) ([]repository.ContratoAtraso, error) {
	query := `
		SELECT ct.id, ct.numero_contrato, c.nome, c.cpf, ct.status,
		       GREATEST(COALESCE(ct.valor_atualizado, ct.valor_original) - ct.valor_pago, 0) AS pendente,
		       GREATEST($2::DATE - ct.data_vencimento, 0)                                    AS dias,
		       ct.data_vencimento
		FROM contratos ct
		JOIN clientes c ON c.id = ct.cliente_id
		WHERE ct.tenant_id = $1
		  AND ct.status NOT IN ('pago', 'cancelado')
		  AND GREATEST($2::DATE - ct.data_vencimento, 0) BETWEEN $3 AND $4
		ORDER BY dias DESC, ct.id
		LIMIT $5`
	rows, err := r.q.Query(ctx, query, tenantID, today, minDays, maxDays, limit)
	if err != nil {
		return nil, fmt.Errorf("list contratos by days overdue: %w", err)
	}
	defer rows.Close()
	var list []repository.ContratoAtraso
	for rows.Next() {
		var a repository.ContratoAtraso
		if err := rows.Scan(&a.ContratoID, &a.NumeroContrato, &a.ClienteNome, &a.CPF, &a.Status,
			&a.ValorPendente, &a.DiasAtraso, &a.DataVencimento); err != nil {
			return nil, fmt.Errorf("scan contrato atraso: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// MarkOverdue passa para atrasado os contratos ativos já vencidos.
func (r *ContratoRepo) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE contratos SET status = 'atrasado', updated_at = NOW()
		WHERE status = 'ativo' AND data_vencimento < $1::DATE`, today)
	if err != nil {
		return 0, fmt.Errorf("mark overdue: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ApplyPayment soma o valor pago e quita o contrato quando o saldo zera.
func (r *ContratoRepo) ApplyPayment(ctx context.Context, contratoID int64, amount decimal.Decimal, paidAt time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE contratos SET
			valor_pago     = valor_pago + $2,
			status         = CASE WHEN valor_pago + $2 >= COALESCE(valor_atualizado, valor_original) THEN 'pago' ELSE status END,
			data_pagamento = CASE WHEN valor_pago + $2 >= COALESCE(valor_atualizado, valor_original) THEN $3::DATE ELSE data_pagamento END,
			updated_at     = NOW()
		WHERE id = $1`, contratoID, amount, paidAt)
	if err != nil {
		return fmt.Errorf("apply payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrNotFound, "Contrato não encontrado")
	}
	return nil
}

func scanContrato(row pgx.Row) (*entity.Contrato, error) {
	var c entity.Contrato
	if err := row.Scan(
		&c.ID, &c.NumeroContrato, &c.TenantID, &c.ClienteID, &c.ValorOriginal, &c.ValorAtualizado, &c.ValorPago,
		&c.DataContrato, &c.DataVencimento, &c.DataPagamento, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
