package repository

import (
	"context"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// UserRepository porta de persistência de usuários.
// Os Get devolvem (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List filtra por tenant; tenantID nil lista todos.
	List(ctx context.Context, tenantID *int64, limit, offset int) ([]*entity.User, error)
}
