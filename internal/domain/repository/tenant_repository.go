package repository

import (
	"context"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// TenantRepository porta de persistência de tenants.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id int64) (*entity.Tenant, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Tenant, error)
	Update(ctx context.Context, tenant *entity.Tenant) error
	List(ctx context.Context, onlyActive bool) ([]*entity.Tenant, error)
}
