package dto

import "github.com/shopspring/decimal"

// DistribuicaoStatus contratos por status.
type DistribuicaoStatus struct {
	Status     string          `json:"status"`
	Quantidade int             `json:"quantidade"`
	Percentual float64         `json:"percentual"`
	ValorTotal decimal.Decimal `json:"valor_total"`
}

// FaixaAtraso contratos por faixa D+.
type FaixaAtraso struct {
	Faixa      string          `json:"faixa"`
	Quantidade int             `json:"quantidade"`
	Percentual float64         `json:"percentual"`
	ValorTotal decimal.Decimal `json:"valor_total"`
}

// TopDevedor devedor com maior valor pendente.
type TopDevedor struct {
	Nome           string          `json:"nome"`
	CPFMascarado   string          `json:"cpf_mascarado"`
	TotalContratos int             `json:"total_contratos"`
	ValorPendente  decimal.Decimal `json:"valor_pendente"`
	MaxAtraso      int             `json:"max_atraso"`
}

// DashboardPrincipal resposta de GET /dashboard/principal.
// ativos, quitados, atrasados e valor_total_carteira repetem os campos principais para o frontend antigo.
type DashboardPrincipal struct {
	TotalContratos     int                  `json:"total_contratos"`
	TotalDevedores     int                  `json:"total_devedores"`
	ContratosAtivos    int                  `json:"contratos_ativos"`
	Ativos             int                  `json:"ativos"`
	ContratosPagos     int                  `json:"contratos_pagos"`
	Quitados           int                  `json:"quitados"`
	ContratosAtrasados int                  `json:"contratos_atrasados"`
	Atrasados          int                  `json:"atrasados"`
	ValorTotal         decimal.Decimal      `json:"valor_total"`
	ValorTotalCarteira decimal.Decimal      `json:"valor_total_carteira"`
	MediaAtraso        float64              `json:"media_atraso"`
	DistribuicaoStatus []DistribuicaoStatus `json:"distribuicao_status"`
	FaixasAtraso       []FaixaAtraso        `json:"faixas_atraso"`
	TopDevedores       []TopDevedor         `json:"top_devedores"`
	TenantID           *int64               `json:"tenant_id"`
	TenantNome         *string              `json:"tenant_nome"`
}

// DashboardConsolidado visão do diretor: total geral e um painel por tenant ativo.
type DashboardConsolidado struct {
	TotalGeral DashboardPrincipal   `json:"total_geral"`
	PorTenant  []DashboardPrincipal `json:"por_tenant"`
}

// Distribuicao item genérico de distribuição percentual.
type Distribuicao struct {
	Categoria  string  `json:"categoria"`
	Quantidade int     `json:"quantidade"`
	Percentual float64 `json:"percentual"`
}

// InadimplenciaPorFaixa inadimplência por faixa de valor.
type InadimplenciaPorFaixa struct {
	FaixaValor string          `json:"faixa_valor"`
	Quantidade int             `json:"quantidade"`
	ValorTotal decimal.Decimal `json:"valor_total"`
	Percentual float64         `json:"percentual"`
}

// DashboardAnaliseClientes resposta de GET /dashboard/analise-clientes.
type DashboardAnaliseClientes struct {
	DPlusMedio                 float64                 `json:"d_plus_medio"`
	BonsPagadores              int                     `json:"bons_pagadores"`
	Reincidentes               int                     `json:"reincidentes"`
	Inadimplentes              int                     `json:"inadimplentes"`
	TicketMedio                decimal.Decimal         `json:"ticket_medio"`
	IdadeMedia                 float64                 `json:"idade_media"`
	DistribuicaoFaixaEtaria    []Distribuicao          `json:"distribuicao_faixa_etaria"`
	DistribuicaoSexo           []Distribuicao          `json:"distribuicao_sexo"`
	InadimplenciaPorFaixaValor []InadimplenciaPorFaixa `json:"inadimplencia_por_faixa_valor"`
	TenantID                   *int64                  `json:"tenant_id"`
}

// RoleDashboard resposta dos painéis por perfil (/dashboard/operator, /manager, /director).
type RoleDashboard struct {
	Dashboard string         `json:"dashboard"`
	Data      map[string]any `json:"data"`
}

// DashboardBase resposta de GET /dashboard/.
type DashboardBase struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
