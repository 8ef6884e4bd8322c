package dto

// PageRequest paginação das listagens (?pagina=&por_pagina=).
type PageRequest struct {
	Pagina    int `query:"pagina"`
	PorPagina int `query:"por_pagina"`
}

// Normalize aplica os padrões (página 1, 20 por página) e limita por_pagina a 1..100.
func (p *PageRequest) Normalize() {
	if p.Pagina < 1 {
		p.Pagina = 1
	}
	if p.PorPagina < 1 {
		p.PorPagina = 20
	}
	if p.PorPagina > 100 {
		p.PorPagina = 100
	}
}

// Offset devolve o deslocamento correspondente à página.
func (p PageRequest) Offset() int {
	return (p.Pagina - 1) * p.PorPagina
}

// ErrorResponse corpo de erro HTTP. O cliente lê detail.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// RateLimitResponse corpo do 429.
type RateLimitResponse struct {
	Detail        string `json:"detail"`
	Limit         int    `json:"limit"`
	WindowSeconds int    `json:"window_seconds"`
}

// HealthResponse resposta de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	App     string `json:"app"`
	Version string `json:"version"`
}
