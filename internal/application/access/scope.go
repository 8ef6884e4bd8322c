package access

import (
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// noTenant é um id que nenhum tenant usa; filtra tudo nas consultas.
const noTenant int64 = -1

// Scope é o conjunto de tenants cujos dados um usuário pode ver em uma requisição.
type Scope struct {
	TenantID *int64 // nil com All = todos os tenants
	All      bool
	None     bool
}

// Filter devolve o filtro de tenant para os repositórios: nil para todos, -1 para nenhum.
func (s Scope) Filter() *int64 {
	switch {
	case s.None:
		v := noTenant
		return &v
	case s.All:
		return nil
	default:
		return s.TenantID
	}
}

// ResolveScope decide o escopo de dados:
// diretor vê o tenant pedido ou todos; usuário sem tenant não vê nada;
// os demais veem apenas o próprio tenant, ignorando o pedido.
func ResolveScope(user *entity.User, requested *int64) Scope {
	if user.IsDirector() {
		if requested != nil {
			return Scope{TenantID: requested}
		}
		return Scope{All: true}
	}
	if user.TenantID == nil {
		return Scope{None: true}
	}
	return Scope{TenantID: user.TenantID}
}

// ValidateTenantAccess verifica se o usuário pode acessar tenantID.
func ValidateTenantAccess(user *entity.User, tenantID int64) error {
	if user.IsDirector() {
		return nil
	}
	if user.TenantID == nil {
		return domain.ErrNoTenantAccess
	}
	if *user.TenantID != tenantID {
		return domain.ErrTenantDenied
	}
	return nil
}

// RequireTenant devolve o tenant do usuário, ou erro se ele não tiver um.
func RequireTenant(user *entity.User) (int64, error) {
	if user.TenantID == nil {
		return 0, domain.ErrNoTenant
	}
	return *user.TenantID, nil
}

// OperatingTenant devolve o tenant em que o usuário grava dados.
// Diretores sem tenant precisam indicar requested.
func OperatingTenant(user *entity.User, requested *int64) (int64, error) {
	if user.IsDirector() && requested != nil {
		return *requested, nil
	}
	return RequireTenant(user)
}

// HasRole informa se o perfil do usuário está entre roles.
func HasRole(user *entity.User, roles ...string) bool {
	for _, r := range roles {
		if user.Role == r {
			return true
		}
	}
	return false
}
