package postgres

import (
	"context"
	"fmt"

	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, email, hashed_password, is_active, is_superuser, role, tenant_id, created_at, updated_at`

// Create persiste um novo usuário e preenche ID e CreatedAt.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, hashed_password, is_active, is_superuser, role, tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.IsActive, user.IsSuperuser, user.Role, user.TenantID,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtém um usuário por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.Role, &u.TenantID,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List lista usuários do tenant (todos quando tenantID é nil) com paginação.
func (r *UserRepo) List(ctx context.Context, tenantID *int64, limit, offset int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1::BIGINT IS NULL OR tenant_id = $1)
		ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, nullableID(tenantID), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser, &u.Role, &u.TenantID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
