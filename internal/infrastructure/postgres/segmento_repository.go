package postgres

import (
	"context"
	"fmt"

	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var _ repository.SegmentoRepository = (*SegmentoRepo)(nil)

// SegmentoRepo segmentos de atraso por tenant.
type SegmentoRepo struct {
	q Querier
}

// NewSegmentoRepository constrói o adaptador de segmentos.
func NewSegmentoRepository(q Querier) *SegmentoRepo {
	return &SegmentoRepo{q: q}
}

// Create persiste um segmento.
func (r *SegmentoRepo) Create(ctx context.Context, s *entity.Segmento) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO segmentos (tenant_id, name, min_days_overdue, max_days_overdue)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		s.TenantID, s.Name, s.MinDaysOverdue, s.MaxDaysOverdue,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert segmento: %w", err)
	}
	return nil
}

// GetByID obtém um segmento.
func (r *SegmentoRepo) GetByID(ctx context.Context, id int64) (*entity.Segmento, error) {
	var s entity.Segmento
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, name, min_days_overdue, max_days_overdue, created_at
		FROM segmentos WHERE id = $1`, id,
	).Scan(&s.ID, &s.TenantID, &s.Name, &s.MinDaysOverdue, &s.MaxDaysOverdue, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get segmento: %w", err)
	}
	return &s, nil
}

// List segmentos do tenant ordenados pelo início do intervalo.
func (r *SegmentoRepo) List(ctx context.Context, tenantID int64) ([]*entity.Segmento, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, name, min_days_overdue, max_days_overdue, created_at
		FROM segmentos WHERE tenant_id = $1
		ORDER BY min_days_overdue, id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list segmentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Segmento
	for rows.Next() {
		var s entity.Segmento
		if err := rows.Scan(&s.ID, &s.TenantID, &s.Name, &s.MinDaysOverdue, &s.MaxDaysOverdue, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan segmento: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete remove um segmento.
func (r *SegmentoRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM segmentos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete segmento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSegmentNotFound
	}
	return nil
}
