package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var (
	_ repository.ImportacaoRepository = (*ImportacaoRepo)(nil)
	_ repository.ArquivoRepository    = (*ArquivoRepo)(nil)
)

// ImportacaoRepo logs de importação (usável com pool ou tx).
type ImportacaoRepo struct {
	q Querier
}

// NewImportacaoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewImportacaoRepository(q Querier) *ImportacaoRepo {
	return &ImportacaoRepo{q: q}
}

const importacaoColumns = `l.id, l.tenant_id, l.usuario_id, l.nome_arquivo, l.tamanho_bytes, l.caminho_arquivo, l.tipo, l.status,
	l.total_linhas, l.linhas_processadas, l.total_erros, l.clientes_criados, l.clientes_atualizados,
	l.contratos_criados, l.contratos_atualizados, l.erros_detalhes, l.colunas_mapeadas, l.mensagem_erro,
	l.data_inicio, l.data_fim`

// Create persiste o log; erros e colunas vão como JSONB.
func (r *ImportacaoRepo) Create(ctx context.Context, l *entity.ImportacaoLog) error {
	erros, colunas, err := importacaoJSON(l)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO importacao_logs (id, tenant_id, usuario_id, nome_arquivo, tamanho_bytes, caminho_arquivo, tipo, status,
			total_linhas, linhas_processadas, total_erros, clientes_criados, clientes_atualizados,
			contratos_criados, contratos_atualizados, erros_detalhes, colunas_mapeadas, mensagem_erro, data_inicio, data_fim)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err = r.q.Exec(ctx, query,
		l.ID, l.TenantID, l.UsuarioID, l.NomeArquivo, l.TamanhoArquivo, nullString(l.CaminhoArquivo), l.TipoImportacao, l.Status,
		l.TotalLinhas, l.LinhasProcessadas, l.LinhasComErro, l.ClientesCriados, l.ClientesAtualizados,
		l.ContratosCriados, l.ContratosAtualizados, erros, colunas, nullString(l.MensagemErro), l.DataInicio, l.DataFim,
	)
	if err != nil {
		return fmt.Errorf("insert importacao log: %w", err)
	}
	return nil
}

// Update grava status, contadores e erros.
func (r *ImportacaoRepo) Update(ctx context.Context, l *entity.ImportacaoLog) error {
	erros, colunas, err := importacaoJSON(l)
	if err != nil {
		return err
	}
	query := `
		UPDATE importacao_logs SET
			status = $2, total_linhas = $3, linhas_processadas = $4, total_erros = $5,
			clientes_criados = $6, clientes_atualizados = $7, contratos_criados = $8, contratos_atualizados = $9,
			erros_detalhes = $10, colunas_mapeadas = $11, mensagem_erro = $12, caminho_arquivo = $13, data_fim = $14
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		l.ID, l.Status, l.TotalLinhas, l.LinhasProcessadas, l.LinhasComErro,
		l.ClientesCriados, l.ClientesAtualizados, l.ContratosCriados, l.ContratosAtualizados,
		erros, colunas, nullString(l.MensagemErro), nullString(l.CaminhoArquivo), l.DataFim,
	)
	if err != nil {
		return fmt.Errorf("update importacao log: %w", err)
	}
	return nil
}

// GetByID obtém um log pelo uuid.
func (r *ImportacaoRepo) GetByID(ctx context.Context, id string) (*entity.ImportacaoLog, error) {
	if !isUUID(id) {
		return nil, nil
	}
	l, err := scanImportacao(r.q.QueryRow(ctx, `SELECT `+importacaoColumns+` FROM importacao_logs l WHERE l.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get importacao log: %w", err)
	}
	return l, nil
}

// List histórico paginado com nome do usuário e do tenant.
func (r *ImportacaoRepo) List(ctx context.Context, tenantID *int64, limit, offset int) ([]repository.ImportacaoResumo, int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM importacao_logs WHERE ($1::BIGINT IS NULL OR tenant_id = $1)`, nullableID(tenantID),
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count importacao logs: %w", err)
	}

	query := `
		SELECT ` + importacaoColumns + `, COALESCE(u.name, ''), COALESCE(t.nome, '')
		FROM importacao_logs l
		LEFT JOIN users   u ON u.id = l.usuario_id
		LEFT JOIN tenants t ON t.id = l.tenant_id
		WHERE ($1::BIGINT IS NULL OR l.tenant_id = $1)
		ORDER BY l.data_inicio DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, nullableID(tenantID), limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list importacao logs: %w", err)
	}
	defer rows.Close()

	var list []repository.ImportacaoResumo
	for rows.Next() {
		var res repository.ImportacaoResumo
		l, err := scanImportacao(rows, &res.UsuarioNome, &res.TenantNome)
		if err != nil {
			return nil, 0, fmt.Errorf("scan importacao log: %w", err)
		}
		res.Log = *l
		list = append(list, res)
	}
	return list, total, rows.Err()
}

// Last devolve a importação mais recente do escopo, ou nil.
func (r *ImportacaoRepo) Last(ctx context.Context, tenantID *int64) (*entity.ImportacaoLog, error) {
	query := `SELECT ` + importacaoColumns + ` FROM importacao_logs l
		WHERE ($1::BIGINT IS NULL OR l.tenant_id = $1)
		ORDER BY l.data_inicio DESC LIMIT 1`
	l, err := scanImportacao(r.q.QueryRow(ctx, query, nullableID(tenantID)))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("last importacao log: %w", err)
	}
	return l, nil
}

func importacaoJSON(l *entity.ImportacaoLog) ([]byte, []byte, error) {
	erros, err := json.Marshal(l.ErrosDetalhes)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal erros: %w", err)
	}
	colunas, err := json.Marshal(l.ColunasMapeadas)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal colunas: %w", err)
	}
	return erros, colunas, nil
}

func scanImportacao(row pgx.Row, extra ...any) (*entity.ImportacaoLog, error) {
	var l entity.ImportacaoLog
	var caminho, mensagem *string
	var erros, colunas []byte
	dest := []any{
		&l.ID, &l.TenantID, &l.UsuarioID, &l.NomeArquivo, &l.TamanhoArquivo, &caminho, &l.TipoImportacao, &l.Status,
		&l.TotalLinhas, &l.LinhasProcessadas, &l.LinhasComErro, &l.ClientesCriados, &l.ClientesAtualizados,
		&l.ContratosCriados, &l.ContratosAtualizados, &erros, &colunas, &mensagem, &l.DataInicio, &l.DataFim,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	l.CaminhoArquivo = strOf(caminho)
	l.MensagemErro = strOf(mensagem)
	if len(erros) > 0 {
		if err := json.Unmarshal(erros, &l.ErrosDetalhes); err != nil {
			return nil, fmt.Errorf("erros_detalhes: %w", err)
		}
	}
	if len(colunas) > 0 {
		if err := json.Unmarshal(colunas, &l.ColunasMapeadas); err != nil {
			return nil, fmt.Errorf("colunas_mapeadas: %w", err)
		}
	}
	return &l, nil
}

// ArquivoRepo metadados dos uploads brutos.
type ArquivoRepo struct {
	q Querier
}

// NewArquivoRepository constrói o adaptador de arquivos.
func NewArquivoRepository(q Querier) *ArquivoRepo {
	return &ArquivoRepo{q: q}
}

// Create persiste os metadados de um upload.
func (r *ArquivoRepo) Create(ctx context.Context, a *entity.Arquivo) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO arquivos (id, tenant_id, usuario_id, nome, object_key, tamanho, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.TenantID, a.UsuarioID, a.Nome, a.ObjectKey, a.Tamanho, nullString(a.ContentType), a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert arquivo: %w", err)
	}
	return nil
}

// GetByID obtém os metadados de um arquivo.
func (r *ArquivoRepo) GetByID(ctx context.Context, id string) (*entity.Arquivo, error) {
	if !isUUID(id) {
		return nil, nil
	}
	a, err := scanArquivo(r.q.QueryRow(ctx, `
		SELECT id, tenant_id, usuario_id, nome, object_key, tamanho, content_type, created_at
		FROM arquivos WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get arquivo: %w", err)
	}
	return a, nil
}

// List arquivos do escopo, mais recentes primeiro.
func (r *ArquivoRepo) List(ctx context.Context, tenantID *int64, limit int) ([]*entity.Arquivo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, tenant_id, usuario_id, nome, object_key, tamanho, content_type, created_at
		FROM arquivos
		WHERE ($1::BIGINT IS NULL OR tenant_id = $1)
		ORDER BY created_at DESC LIMIT $2`, nullableID(tenantID), limit)
	if err != nil {
		return nil, fmt.Errorf("list arquivos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Arquivo
	for rows.Next() {
		a, err := scanArquivo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan arquivo: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func scanArquivo(row pgx.Row) (*entity.Arquivo, error) {
	var a entity.Arquivo
	var ct *string
	if err := row.Scan(&a.ID, &a.TenantID, &a.UsuarioID, &a.Nome, &a.ObjectKey, &a.Tamanho, &ct, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.ContentType = strOf(ct)
	return &a, nil
}
