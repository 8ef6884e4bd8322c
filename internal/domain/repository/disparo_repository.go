package repository

import (
	"context"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// DisparoRepository porta de persistência dos disparos de comunicação.
type DisparoRepository interface {
	Create(ctx context.Context, d *entity.Disparo) error
	Update(ctx context.Context, d *entity.Disparo) error
	GetByProviderID(ctx context.Context, providerID string) (*entity.Disparo, error)
	// List devolve os mais recentes primeiro; channel vazio não filtra.
	List(ctx context.Context, tenantID *int64, channel string, limit int) ([]*entity.Disparo, error)
}
