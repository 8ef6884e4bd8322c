package entity

import "time"

// Tipos de importação de base.
const (
	ImportNovaBase    = "nova_base"
	ImportAtualizacao = "atualizacao"
	ImportIncremental = "incremental"
)

// Status de importação.
const (
	ImportPendente    = "pendente"
	ImportProcessando = "processando"
	ImportConcluido   = "concluido"
	ImportErro        = "erro"
	ImportCancelado   = "cancelado"
)

// ValidImportType informa se t é um tipo de importação conhecido.
func ValidImportType(t string) bool {
	switch t {
	case ImportNovaBase, ImportAtualizacao, ImportIncremental:
		return true
	}
	return false
}

// ImportacaoLog registra cada importação de base: arquivo, contadores e erros.
type ImportacaoLog struct {
	ID                   string // uuid
	TenantID             int64
	UsuarioID            int64
	NomeArquivo          string
	TamanhoArquivo       int64
	CaminhoArquivo       string
	TipoImportacao       string
	Status               string
	TotalLinhas          int
	LinhasProcessadas    int
	LinhasComErro        int
	ClientesCriados      int
	ClientesAtualizados  int
	ContratosCriados     int
	ContratosAtualizados int
	ErrosDetalhes        []string
	ColunasMapeadas      map[string]string
	MensagemErro         string
	DataInicio           time.Time
	DataFim              *time.Time
}
