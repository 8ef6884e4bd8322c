package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

func ptr(v int64) *int64 { return &v }

func TestResolveScope_Diretor(t *testing.T) {
	dir := &entity.User{Role: entity.RoleDiretor}

	s := ResolveScope(dir, nil)
	assert.True(t, s.All)
	assert.Nil(t, s.Filter(), "diretor sem tenant pedido vê todos")

	s = ResolveScope(dir, ptr(3))
	require.NotNil(t, s.Filter())
	assert.Equal(t, int64(3), *s.Filter())
}

func TestResolveScope_SemTenant(t *testing.T) {
	op := &entity.User{Role: entity.RoleOperador}
	s := ResolveScope(op, ptr(3))
	assert.True(t, s.None)
	require.NotNil(t, s.Filter())
	assert.Equal(t, int64(-1), *s.Filter())
}

func TestResolveScope_IgnoraTenantPedido(t *testing.T) {
	ger := &entity.User{Role: entity.RoleGerente, TenantID: ptr(1)}
	s := ResolveScope(ger, ptr(2))
	assert.Equal(t, int64(1), *s.Filter())
}

func TestValidateTenantAccess(t *testing.T) {
	assert.NoError(t, ValidateTenantAccess(&entity.User{Role: entity.RoleDiretor}, 9))

	err := ValidateTenantAccess(&entity.User{Role: entity.RoleOperador}, 9)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Equal(t, "Usuário não tem acesso a nenhum tenant", err.Error())

	err = ValidateTenantAccess(&entity.User{Role: entity.RoleOperador, TenantID: ptr(1)}, 9)
	assert.Equal(t, domain.ErrTenantDenied, err)

	assert.NoError(t, ValidateTenantAccess(&entity.User{Role: entity.RoleOperador, TenantID: ptr(9)}, 9))
}

func TestRequireTenant(t *testing.T) {
	_, err := RequireTenant(&entity.User{Role: entity.RoleOperador})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	id, err := OperatingTenant(&entity.User{Role: entity.RoleDiretor}, ptr(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	_, err = OperatingTenant(&entity.User{Role: entity.RoleDiretor}, nil)
	assert.Equal(t, domain.ErrNoTenant, err)
}
