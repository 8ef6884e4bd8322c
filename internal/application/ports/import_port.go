package ports

import (
	"context"
	"time"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// Sheet conteúdo tabular de um arquivo de base: cabeçalho e linhas como texto.
// Células numéricas de planilhas chegam sem formatação (datas como número serial).
type Sheet struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// SheetReader lê CSV ou XLSX a partir do nome e do conteúdo do arquivo.
type SheetReader interface {
	Read(filename string, data []byte) (*Sheet, error)
}

// Formatos de template de importação.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// SheetWriter gera um arquivo de planilha no formato pedido.
type SheetWriter interface {
	Write(format, sheetName string, headers []string, rows [][]string) ([]byte, error)
}

// StoredPreview estado guardado entre o preview e a confirmação de uma importação.
type StoredPreview struct {
	ID              string            `json:"id"`
	TenantID        int64             `json:"tenant_id"`
	UsuarioID       int64             `json:"usuario_id"`
	Arquivo         string            `json:"arquivo"`
	TamanhoArquivo  int64             `json:"tamanho_arquivo"`
	CaminhoArquivo  string            `json:"caminho_arquivo"`
	TipoImportacao  string            `json:"tipo_importacao"`
	ColunasMapeadas map[string]string `json:"colunas_mapeadas"`
	Sheet           Sheet             `json:"sheet"`
	CreatedAt       time.Time         `json:"created_at"`
}

// PreviewStore guarda previews com expiração. Get e Take devolvem nil, nil quando não existe ou expirou.
// Take lê e remove numa única operação: de chamadas concorrentes só uma recebe o preview.
type PreviewStore interface {
	Save(ctx context.Context, p *StoredPreview, ttl time.Duration) error
	Get(ctx context.Context, id string) (*StoredPreview, error)
	Take(ctx context.Context, id string) (*StoredPreview, error)
}

// ReportGenerator gera o relatório PDF de uma importação.
type ReportGenerator interface {
	ImportReport(log *entity.ImportacaoLog, tenantNome string) ([]byte, error)
}
