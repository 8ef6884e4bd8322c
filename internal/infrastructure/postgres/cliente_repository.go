package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementação do ClienteRepository (usável com pool ou tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, tenant_id, nome, cpf, data_nascimento, sexo, telefone, email, endereco, cidade, estado, cep, created_at, updated_at`

// Create persiste um novo cliente.
func (r *ClienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (tenant_id, nome, cpf, data_nascimento, sexo, telefone, email, endereco, cidade, estado, cep)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		c.TenantID, c.Nome, c.CPF, c.DataNascimento, nullString(c.Sexo), nullString(c.Telefone),
		nullString(c.Email), nullString(c.Endereco), nullString(c.Cidade), nullString(c.Estado), nullString(c.CEP),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.ErrConflict, "CPF %s já cadastrado", c.CPF)
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// Update grava os dados cadastrais; o CPF não muda.
func (r *ClienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	query := `
		UPDATE clientes SET
			nome = $2, data_nascimento = $3, sexo = $4, telefone = $5, email = $6,
			endereco = $7, cidade = $8, estado = $9, cep = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	err := r.q.QueryRow(ctx, query,
		c.ID, c.Nome, c.DataNascimento, nullString(c.Sexo), nullString(c.Telefone), nullString(c.Email),
		nullString(c.Endereco), nullString(c.Cidade), nullString(c.Estado), nullString(c.CEP),
	).Scan(&c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// GetByCPF obtém o cliente do tenant pelo CPF formatado.
func (r *ClienteRepo) GetByCPF(ctx context.Context, tenantID int64, cpf string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE tenant_id = $1 AND cpf = $2`
	c, err := scanCliente(r.q.QueryRow(ctx, query, tenantID, cpf))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// FindIDsByCPF resolve em uma consulta os CPFs já cadastrados no tenant.
func (r *ClienteRepo) FindIDsByCPF(ctx context.Context, tenantID int64, cpfs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(cpfs))
	if len(cpfs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT cpf, id FROM clientes WHERE tenant_id = $1 AND cpf = ANY($2)`, tenantID, cpfs)
	if err != nil {
		return nil, fmt.Errorf("find clientes by cpf: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cpf string
		var id int64
		if err := rows.Scan(&cpf, &id); err != nil {
			return nil, fmt.Errorf("scan cpf: %w", err)
		}
		out[cpf] = id
	}
	return out, rows.Err()
}

// ListResumo lista clientes com os agregados dos contratos e o total para paginação.
func (r *ClienteRepo) ListResumo(ctx context.Context, tenantID *int64, busca string, limit, offset int) ([]repository.ClienteResumo, int, error) {
	const where = `
		WHERE ($1::BIGINT IS NULL OR c.tenant_id = $1)
		  AND ($2 = '' OR c.nome ILIKE '%' || $2 || '%' OR c.cpf ILIKE '%' || $2 || '%')`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clientes c`+where, nullableID(tenantID), busca).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}

	query := `
		SELECT c.id, c.nome, c.cpf, COALESCE(c.telefone, ''), COALESCE(c.email, ''),
		       COUNT(ct.id),
		       COUNT(ct.id) FILTER (WHERE ct.status = 'pago'),
		       COUNT(ct.id) FILTER (WHERE ct.status = 'atrasado'),
		       COALESCE(SUM(ct.valor_original), 0),
		       c.created_at
		FROM clientes c
		LEFT JOIN contratos ct ON ct.cliente_id = c.id` + where + `
		GROUP BY c.id
		ORDER BY c.nome
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, nullableID(tenantID), busca, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []repository.ClienteResumo
	for rows.Next() {
		var c repository.ClienteResumo
		if err := rows.Scan(
			&c.ID, &c.Nome, &c.CPF, &c.Telefone, &c.Email,
			&c.TotalContratos, &c.ContratosPagos, &c.ContratosAtrasados, &c.ValorTotal, &c.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	var nascimento *time.Time
	var sexo, telefone, email, endereco, cidade, estado, cep *string
	if err := row.Scan(
		&c.ID, &c.TenantID, &c.Nome, &c.CPF, &nascimento, &sexo, &telefone, &email,
		&endereco, &cidade, &estado, &cep, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	c.DataNascimento = nascimento
	c.Sexo = strOf(sexo)
	c.Telefone = strOf(telefone)
	c.Email = strOf(email)
	c.Endereco = strOf(endereco)
	c.Cidade = strOf(cidade)
	c.Estado = strOf(estado)
	c.CEP = strOf(cep)
	return &c, nil
}
