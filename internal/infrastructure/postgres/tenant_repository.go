package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

// Garante que TenantRepo implementa repository.TenantRepository.
var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementação do TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository constrói o adaptador de persistência de tenants.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

const tenantColumns = `id, nome, cnpj, email, telefone, ativo, created_at, updated_at`

// Create persiste um tenant; CNPJ repetido vira ErrCNPJAlreadyExists.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (nome, cnpj, email, telefone, ativo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		t.Nome, t.CNPJ, nullString(t.Email), nullString(t.Telefone), t.Ativo,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCNPJAlreadyExists
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtém um tenant por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id int64) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
}

// GetByCNPJ obtém um tenant pelo CNPJ.
func (r *TenantRepo) GetByCNPJ(ctx context.Context, cnpj string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE cnpj = $1`, cnpj)
}

func (r *TenantRepo) getOne(ctx context.Context, query string, arg any) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// Update grava nome, contato e ativo.
func (r *TenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	query := `
		UPDATE tenants SET nome = $2, email = $3, telefone = $4, ativo = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		t.ID, t.Nome, nullString(t.Email), nullString(t.Telefone), t.Ativo,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrTenantNotFound
		}
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}

// List devolve os tenants ordenados por nome.
func (r *TenantRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE (NOT $1 OR ativo) ORDER BY nome`
	rows, err := r.q.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	var email, telefone *string
	if err := row.Scan(&t.ID, &t.Nome, &t.CNPJ, &email, &telefone, &t.Ativo, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Email = strOf(email)
	t.Telefone = strOf(telefone)
	return &t, nil
}
