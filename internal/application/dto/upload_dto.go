package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Campo descreve uma coluna aceita no upload de base.
type Campo struct {
	Nome         string   `json:"nome"`
	Descricao    string   `json:"descricao"`
	Tipo         string   `json:"tipo"`
	Exemplo      string   `json:"exemplo"`
	Alternativas []string `json:"alternativas"`
}

// EstruturaCampos resposta de GET /base/campos.
type EstruturaCampos struct {
	Obrigatorios []Campo `json:"obrigatorios"`
	Opcionais    []Campo `json:"opcionais"`
}

// LinhaPreview uma linha analisada do arquivo.
type LinhaPreview struct {
	Linha           int               `json:"linha"`
	CPF             *string           `json:"cpf"`
	Nome            *string           `json:"nome"`
	Valor           *decimal.Decimal  `json:"valor"`
	Vencimento      *string           `json:"vencimento"` // yyyy-mm-dd
	StatusValidacao string            `json:"status_validacao"`
	Acao            string            `json:"acao"`
	Erros           []string          `json:"erros"`
	DadosExistentes map[string]string `json:"dados_existentes,omitempty"`
}

// PreviewUpload resposta de POST /base/upload/preview.
type PreviewUpload struct {
	PreviewID          string            `json:"preview_id"`
	Arquivo            string            `json:"arquivo"`
	TipoImportacao     string            `json:"tipo_importacao"`
	TotalLinhas        int               `json:"total_linhas"`
	LinhasValidas      int               `json:"linhas_validas"`
	LinhasInvalidas    int               `json:"linhas_invalidas"`
	NovosClientes      int               `json:"novos_clientes"`
	Atualizacoes       int               `json:"atualizacoes"`
	Duplicados         int               `json:"duplicados"`
	Preview            []LinhaPreview    `json:"preview"`
	ColunasEncontradas []string          `json:"colunas_encontradas"`
	ColunasMapeadas    map[string]string `json:"colunas_mapeadas"`
	ExpiraEm           time.Time         `json:"expira_em"`
}

// ResultadoImportacao resultado de uma importação (confirmada ou direta).
type ResultadoImportacao struct {
	IDImportacao         string     `json:"id_importacao"`
	Arquivo              string     `json:"arquivo"`
	TipoImportacao       string     `json:"tipo_importacao"`
	Status               string     `json:"status"`
	TotalLinhas          int        `json:"total_linhas"`
	ClientesCriados      int        `json:"clientes_criados"`
	ClientesAtualizados  int        `json:"clientes_atualizados"`
	ContratosCriados     int        `json:"contratos_criados"`
	ContratosAtualizados int        `json:"contratos_atualizados"`
	TotalErros           int        `json:"total_erros"`
	Erros                []string   `json:"erros"`
	DataInicio           time.Time  `json:"data_inicio"`
	DataFim              *time.Time `json:"data_fim"`
	TenantID             int64      `json:"tenant_id"`
	UsuarioID            int64      `json:"usuario_id"`
}

// LogImportacao item de GET /base/logs.
type LogImportacao struct {
	ID          string    `json:"id"`
	Arquivo     string    `json:"arquivo"`
	Tipo        string    `json:"tipo"`
	Status      string    `json:"status"`
	TotalLinhas int       `json:"total_linhas"`
	Processados int       `json:"processados"`
	Erros       int       `json:"erros"`
	Data        time.Time `json:"data"`
	Usuario     string    `json:"usuario"`
	TenantNome  *string   `json:"tenant_nome"`
}

// ListaLogsImportacao página de logs.
type ListaLogsImportacao struct {
	Logs      []LogImportacao `json:"logs"`
	Total     int             `json:"total"`
	Pagina    int             `json:"pagina"`
	PorPagina int             `json:"por_pagina"`
}

// EstatisticasBase resposta de GET /base/estatisticas.
type EstatisticasBase struct {
	TotalClientes     int             `json:"total_clientes"`
	TotalContratos    int             `json:"total_contratos"`
	ValorTotal        decimal.Decimal `json:"valor_total"`
	ClientesComAtraso int             `json:"clientes_com_atraso"`
	UltimaImportacao  *time.Time      `json:"ultima_importacao"`
}

// ClienteBase item de GET /base/clientes.
type ClienteBase struct {
	ID             int64           `json:"id"`
	Nome           string          `json:"nome"`
	CPFMasked      string          `json:"cpf_masked"`
	Telefone       *string         `json:"telefone"`
	Email          *string         `json:"email"`
	TotalContratos int             `json:"total_contratos"`
	ValorTotal     decimal.Decimal `json:"valor_total"`
	Status         string          `json:"status"`
	DataCadastro   time.Time       `json:"data_cadastro"`
}

// ListaClientesBase página de clientes.
type ListaClientesBase struct {
	Clientes  []ClienteBase `json:"clientes"`
	Total     int           `json:"total"`
	Pagina    int           `json:"pagina"`
	PorPagina int           `json:"por_pagina"`
}

// ArquivoResponse metadados de um upload bruto.
type ArquivoResponse struct {
	FileID      string    `json:"file_id"`
	Filename    string    `json:"filename"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
