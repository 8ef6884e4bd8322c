package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var _ repository.DisparoRepository = (*DisparoRepo)(nil)

// DisparoRepo histórico de mensagens de cobrança.
type DisparoRepo struct {
	q Querier
}

// NewDisparoRepository constrói o adaptador de disparos.
func NewDisparoRepository(q Querier) *DisparoRepo {
	return &DisparoRepo{q: q}
}

const disparoColumns = `id, tenant_id, user_id, channel, recipient, message, status, provider_id, error, created_at, updated_at`

// Create persiste o disparo ainda na fila.
func (r *DisparoRepo) Create(ctx context.Context, d *entity.Disparo) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO disparos (id, tenant_id, user_id, channel, recipient, message, status, provider_id, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, d.TenantID, d.UserID, d.Channel, d.To, d.Message, d.Status,
		nullString(d.ProviderID), nullString(d.Error), d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert disparo: %w", err)
	}
	return nil
}

// Update grava status, id do provedor e erro.
func (r *DisparoRepo) Update(ctx context.Context, d *entity.Disparo) error {
	_, err := r.q.Exec(ctx, `
		UPDATE disparos SET status = $2, provider_id = $3, error = $4, updated_at = $5
		WHERE id = $1`,
		d.ID, d.Status, nullString(d.ProviderID), nullString(d.Error), d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update disparo: %w", err)
	}
	return nil
}

// GetByProviderID localiza o disparo pelo id devolvido pelo provedor.
func (r *DisparoRepo) GetByProviderID(ctx context.Context, providerID string) (*entity.Disparo, error) {
	d, err := scanDisparo(r.q.QueryRow(ctx, `SELECT `+disparoColumns+` FROM disparos WHERE provider_id = $1`, providerID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get disparo: %w", err)
	}
	return d, nil
}

// List mais recentes primeiro; channel vazio traz todos os canais.
func (r *DisparoRepo) List(ctx context.Context, tenantID *int64, channel string, limit int) ([]*entity.Disparo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+disparoColumns+` FROM disparos
		WHERE ($1::BIGINT IS NULL OR tenant_id = $1) AND ($2 = '' OR channel = $2)
		ORDER BY created_at DESC LIMIT $3`,
		nullableID(tenantID), channel, limit)
	if err != nil {
		return nil, fmt.Errorf("list disparos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Disparo
	for rows.Next() {
		d, err := scanDisparo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan disparo: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDisparo(row pgx.Row) (*entity.Disparo, error) {
	var d entity.Disparo
	var providerID, errText *string
	if err := row.Scan(&d.ID, &d.TenantID, &d.UserID, &d.Channel, &d.To, &d.Message, &d.Status,
		&providerID, &errText, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	d.ProviderID = strOf(providerID)
	d.Error = strOf(errText)
	return &d, nil
}
