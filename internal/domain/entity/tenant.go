package entity

import "time"

// Tenant é uma empresa cliente da plataforma; os dados de cobrança ficam isolados por tenant.
type Tenant struct {
	ID        int64
	Nome      string
	CNPJ      string
	Email     string
	Telefone  string
	Ativo     bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
