package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*entity.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[int64]*entity.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) List(context.Context, *int64, int, int) ([]*entity.User, error) {
	return nil, nil
}

type fakeTenants struct{ ids map[int64]bool }

func (f fakeTenants) Create(context.Context, *entity.Tenant) error { return nil }
func (f fakeTenants) GetByID(_ context.Context, id int64) (*entity.Tenant, error) {
	if f.ids[id] {
		return &entity.Tenant{ID: id, Nome: "Alpha", Ativo: true}, nil
	}
	return nil, nil
}
func (f fakeTenants) GetByCNPJ(context.Context, string) (*entity.Tenant, error) { return nil, nil }
func (f fakeTenants) Update(context.Context, *entity.Tenant) error              { return nil }
func (f fakeTenants) List(context.Context, bool) ([]*entity.Tenant, error)      { return nil, nil }

const secret = "segredo-teste"

func newUC() (*AuthUseCase, *fakeUsers) {
	users := newFakeUsers()
	uc := NewAuthUseCase(users, fakeTenants{ids: map[int64]bool{1: true}}, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}).
		WithHashCost(bcrypt.MinCost)
	return uc, users
}

func register(t *testing.T, uc *AuthUseCase, actor *entity.User, in dto.CreateUserRequest) *dto.UserResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), actor, in)
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_PublicoViraOperadorSemTenant(t *testing.T) {
	uc, _ := newUC()
	tenant := int64(1)
	out := register(t, uc, nil, dto.CreateUserRequest{Name: "Ana", Email: " Ana@Cordoba.com ", Password: "123456", Role: "diretor", TenantID: &tenant})

	assert.Equal(t, "ana@cordoba.com", out.Email)
	assert.Equal(t, entity.RoleOperador, out.Role, "sem diretor o perfil pedido é ignorado")
	assert.Nil(t, out.TenantID)
	assert.True(t, out.IsActive)
}

func TestRegister_DiretorDefinePerfilETenant(t *testing.T) {
	uc, _ := newUC()
	tenant := int64(1)
	dir := &entity.User{ID: 99, Role: entity.RoleDiretor}
	out := register(t, uc, dir, dto.CreateUserRequest{Name: "Gil", Email: "gil@x.com", Password: "123456", Role: "gerente", TenantID: &tenant})

	assert.Equal(t, entity.RoleGerente, out.Role)
	require.NotNil(t, out.TenantID)
	assert.Equal(t, int64(1), *out.TenantID)
}

func TestRegister_TenantInexistente(t *testing.T) {
	uc, _ := newUC()
	tenant := int64(42)
	_, err := uc.Register(context.Background(), &entity.User{Role: entity.RoleDiretor},
		dto.CreateUserRequest{Name: "Gil", Email: "gil@x.com", Password: "123456", TenantID: &tenant})
	assert.Equal(t, domain.ErrTenantNotFound, err)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUC()
	register(t, uc, nil, dto.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "123456"})

	_, err := uc.Register(context.Background(), nil, dto.CreateUserRequest{Name: "Ana 2", Email: "ANA@x.com", Password: "abcdef"})
	assert.Equal(t, domain.ErrEmailAlreadyExists, err)
	assert.Equal(t, "Email já cadastrado", err.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Authenticate
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Sucesso(t *testing.T) {
	uc, _ := newUC()
	u := register(t, uc, nil, dto.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "123456"})

	tok, err := uc.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Equal(t, 3600, tok.ExpiresIn)

	id, err := jwt.Parse(secret, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id.UserID)
}

func TestLogin_CredenciaisInvalidas(t *testing.T) {
	uc, users := newUC()
	u := register(t, uc, nil, dto.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "123456"})

	_, err := uc.Login(context.Background(), "ana@x.com", "errada")
	assert.Equal(t, domain.ErrInvalidCredentials, err)

	_, err = uc.Login(context.Background(), "ninguem@x.com", "123456")
	assert.Equal(t, domain.ErrInvalidCredentials, err)

	users.byID[u.ID].IsActive = false
	_, err = uc.Login(context.Background(), "ana@x.com", "123456")
	assert.Equal(t, domain.ErrInvalidCredentials, err)
	assert.True(t, IsAuthError(err))
}

func TestAuthenticate(t *testing.T) {
	uc, users := newUC()
	u := register(t, uc, nil, dto.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Password: "123456"})
	tok, err := uc.Login(context.Background(), "ana@x.com", "123456")
	require.NoError(t, err)

	got, err := uc.Authenticate(context.Background(), tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = uc.Authenticate(context.Background(), "lixo")
	assert.Equal(t, domain.ErrInvalidToken, err)

	users.byID[u.ID].IsActive = false
	_, err = uc.Authenticate(context.Background(), tok.AccessToken)
	assert.True(t, errors.Is(err, domain.ErrInactiveUser))
}

func TestAccessStatus(t *testing.T) {
	st := AccessStatus(&entity.User{Role: entity.RoleOperador})
	assert.False(t, st.HasDataAccess)
	require.NotNil(t, st.Message)
	assert.Equal(t, NoTenantMessage, *st.Message)

	st = AccessStatus(&entity.User{Role: entity.RoleDiretor})
	assert.True(t, st.HasDataAccess)
	assert.True(t, st.IsDirector)
	assert.Nil(t, st.Message)
}
