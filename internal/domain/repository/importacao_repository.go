package repository

import (
	"context"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// ImportacaoResumo log de importação com nomes de usuário e tenant resolvidos.
type ImportacaoResumo struct {
	Log         entity.ImportacaoLog
	UsuarioNome string
	TenantNome  string
}

// ImportacaoRepository porta de persistência dos logs de importação.
type ImportacaoRepository interface {
	Create(ctx context.Context, log *entity.ImportacaoLog) error
	Update(ctx context.Context, log *entity.ImportacaoLog) error
	GetByID(ctx context.Context, id string) (*entity.ImportacaoLog, error)
	// List ordena da mais recente para a mais antiga.
	List(ctx context.Context, tenantID *int64, limit, offset int) ([]ImportacaoResumo, int, error)
	Last(ctx context.Context, tenantID *int64) (*entity.ImportacaoLog, error)
}

// ArquivoRepository metadados dos uploads brutos.
type ArquivoRepository interface {
	Create(ctx context.Context, a *entity.Arquivo) error
	GetByID(ctx context.Context, id string) (*entity.Arquivo, error)
	List(ctx context.Context, tenantID *int64, limit int) ([]*entity.Arquivo, error)
}
