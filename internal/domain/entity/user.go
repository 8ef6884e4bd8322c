package entity

import "time"

// Perfis de usuário.
const (
	RoleOperador = "operador"
	RoleGerente  = "gerente"
	RoleDiretor  = "diretor"
)

// ValidRole informa se role é um dos perfis conhecidos.
func ValidRole(role string) bool {
	switch role {
	case RoleOperador, RoleGerente, RoleDiretor:
		return true
	}
	return false
}

// User representa um usuário da plataforma. Diretores podem não ter tenant.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	Role         string
	TenantID     *int64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func (u *User) IsDirector() bool { return u.Role == RoleDiretor }
func (u *User) IsManager() bool  { return u.Role == RoleGerente }
func (u *User) IsOperator() bool { return u.Role == RoleOperador }

// HasDataAccess é verdadeiro para diretores e para usuários vinculados a um tenant.
func (u *User) HasDataAccess() bool {
	return u.IsDirector() || u.TenantID != nil
}
