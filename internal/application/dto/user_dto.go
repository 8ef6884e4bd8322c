package dto

import "time"

// CreateUserRequest entrada de POST /users/. Role e tenant só são aceitos quando quem cria é diretor.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=operador gerente diretor"`
	TenantID *int64 `json:"tenant_id"`
}

// UserResponse usuário sem a senha.
type UserResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	Role        string    `json:"role"`
	TenantID    *int64    `json:"tenant_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginRequest campos do formulário de POST /auth/login (username é o email).
type LoginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TokenResponse resposta do login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessStatusResponse visão de autorização do usuário atual.
type AccessStatusResponse struct {
	HasDataAccess bool    `json:"has_data_access"`
	IsDirector    bool    `json:"is_director"`
	TenantID      *int64  `json:"tenant_id"`
	Role          string  `json:"role"`
	Message       *string `json:"message"`
}
