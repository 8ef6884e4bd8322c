package repository

import (
	"context"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// SegmentoRepository porta de persistência dos segmentos de atraso.
type SegmentoRepository interface {
	Create(ctx context.Context, s *entity.Segmento) error
	GetByID(ctx context.Context, id int64) (*entity.Segmento, error)
	// List ordena por MinDaysOverdue.
	List(ctx context.Context, tenantID int64) ([]*entity.Segmento, error)
	Delete(ctx context.Context, id int64) error
}
