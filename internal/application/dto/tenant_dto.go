package dto

import "time"

// CreateTenantRequest entrada de POST /tenants.
type CreateTenantRequest struct {
	Nome     string `json:"nome" validate:"required,min=2,max=255"`
	CNPJ     string `json:"cnpj" validate:"required,min=14,max=18"`
	Email    string `json:"email" validate:"omitempty,email"`
	Telefone string `json:"telefone" validate:"omitempty,max=20"`
}

// UpdateTenantRequest entrada de PATCH /tenants/:id; campos nil não mudam.
type UpdateTenantRequest struct {
	Nome     *string `json:"nome" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Telefone *string `json:"telefone" validate:"omitempty,max=20"`
	Ativo    *bool   `json:"ativo"`
}

// TenantResponse tenant completo.
type TenantResponse struct {
	ID        int64     `json:"id"`
	Nome      string    `json:"nome"`
	CNPJ      string    `json:"cnpj"`
	Email     string    `json:"email,omitempty"`
	Telefone  string    `json:"telefone,omitempty"`
	Ativo     bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
}

// TenantSimple item do seletor de tenants.
type TenantSimple struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
	CNPJ string `json:"cnpj"`
}
