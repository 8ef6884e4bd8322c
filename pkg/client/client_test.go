package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor fake
// ──────────────────────────────────────────────────────────────────────────────

const validToken = "tok-valido"

type fakeAPI struct {
	calls      atomic.Int64
	meStatus   atomic.Int64
	lastAuth   atomic.Value
	lastUserCT atomic.Value
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{}
	f.meStatus.Store(http.StatusOK)
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.Header.Get("Content-Type") != "application/x-www-form-urlencoded" {
			writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"detail": "form esperado"})
			return
		}
		_ = r.ParseForm()
		if r.PostForm.Get("username") != "diretor@cordoba.com" || r.PostForm.Get("password") != "dir123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Usuário ou senha inválidos"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access_token": validToken, "token_type": "bearer"})
	})
	mux.HandleFunc("POST /users/", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.lastUserCT.Store(r.Header.Get("Content-Type"))
		var in RegisterData
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Email == "dup@cordoba.com" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Email já cadastrado"})
			return
		}
		writeJSON(w, http.StatusOK, User{ID: 9, Name: in.Name, Email: in.Email, IsActive: true, Role: RoleOperador})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		f.lastAuth.Store(r.Header.Get("Authorization"))
		switch {
		case f.meStatus.Load() != http.StatusOK:
			writeJSON(w, int(f.meStatus.Load()), map[string]string{"detail": "falhou"})
		case r.Header.Get("Authorization") != "Bearer "+validToken:
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token inválido"})
		default:
			writeJSON(w, http.StatusOK, User{ID: 1, Name: "Carlos Diretor", Email: "diretor@cordoba.com", IsActive: true, Role: RoleDiretor})
		}
	})
	mux.HandleFunc("GET /auth/me/access-status", func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		writeJSON(w, http.StatusOK, AccessStatus{HasDataAccess: true, IsDirector: true, Role: RoleDiretor})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / Logout / IsAuthenticated
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_SucessoGuardaToken(t *testing.T) {
	_, srv := newFakeAPI(t)
	store := NewMemoryTokenStore()
	c := New(srv.URL, WithTokenStore(store))

	resp, err := c.Login(context.Background(), Credentials{Email: "diretor@cordoba.com", Password: "dir123"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	tok, _ := store.Load()
	assert.Equal(t, validToken, tok)
	assert.True(t, c.IsAuthenticated())
}

func TestLogin_RejeitadoNaoMexeNoTokenEExpoeDetail(t *testing.T) {
	_, srv := newFakeAPI(t)
	store := NewMemoryTokenStore()
	require.NoError(t, store.Save("token-anterior"))
	c := New(srv.URL, WithTokenStore(store))

	_, err := c.Login(context.Background(), Credentials{Email: "diretor@cordoba.com", Password: "errada"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Usuário ou senha inválidos", ErrorMessage(err))

	tok, _ := store.Load()
	assert.Equal(t, "token-anterior", tok)
}

func TestIsAuthenticated_SoOlhaPresencaDoToken(t *testing.T) {
	c := New("http://127.0.0.1:1")
	assert.False(t, c.IsAuthenticated())

	require.NoError(t, c.tokens.Save("qualquer-coisa"))
	assert.True(t, c.IsAuthenticated())
}

func TestLogout_ApagaToken(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL)
	_, err := c.Login(context.Background(), Credentials{Email: "diretor@cordoba.com", Password: "dir123"})
	require.NoError(t, err)

	require.NoError(t, c.Logout())
	assert.False(t, c.IsAuthenticated())
}

func TestCurrentUser_EnviaBearer(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := New(srv.URL)
	require.NoError(t, c.tokens.Save(validToken))

	u, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RoleDiretor, u.Role)
	assert.Equal(t, "Bearer "+validToken, f.lastAuth.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// Register e validação de formulário
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EnviaJSON(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := New(srv.URL)

	u, err := c.Register(context.Background(), RegisterData{Name: "Ana", Email: "ana@cordoba.com", Password: "segredo"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, "application/json", f.lastUserCT.Load())
}

func TestRegister_DetailDaAPI(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL)

	_, err := c.Register(context.Background(), RegisterData{Name: "Ana", Email: "dup@cordoba.com", Password: "segredo"})
	assert.Equal(t, "Email já cadastrado", ErrorMessage(err))
}

func TestRegisterValidated_SenhasDiferentesNaoChamaRede(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := New(srv.URL)

	_, err := c.RegisterValidated(context.Background(), RegisterForm{
		Name: "Ana", Email: "ana@cordoba.com", Password: "segredo1", ConfirmPassword: "segredo2",
	})
	var fe *FormError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, MsgPasswordMismatch, fe.Message)
	assert.Zero(t, f.calls.Load())
}

func TestValidated_EmailSemArrobaNaoChamaRede(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.LoginValidated(ctx, Credentials{Email: "diretor.cordoba.com", Password: "dir123"})
	assert.Equal(t, MsgInvalidEmail, ErrorMessage(err))

	_, err = c.RegisterValidated(ctx, RegisterForm{Name: "Ana", Email: "ana", Password: "segredo", ConfirmPassword: "segredo"})
	assert.Equal(t, MsgInvalidEmail, ErrorMessage(err))

	assert.Zero(t, f.calls.Load())
}

func TestValidateLogin_CamposVazios(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := New(srv.URL)

	_, err := c.LoginValidated(context.Background(), Credentials{Email: "diretor@cordoba.com"})
	assert.Equal(t, "Por favor, preencha todos os campos", ErrorMessage(err))
	assert.Equal(t, MsgLoginRequired, ErrorMessage(ValidateLogin(Credentials{Password: "dir123"})))
	assert.NoError(t, ValidateLogin(Credentials{Email: "diretor@cordoba.com", Password: "dir123"}))
	assert.Zero(t, f.calls.Load())
}

func TestRegisterForm_Validate(t *testing.T) {
	tests := []struct {
		name string
		form RegisterForm
		want string
	}{
		{"campo vazio", RegisterForm{Email: "a@b.com", Password: "123456", ConfirmPassword: "123456"}, MsgRequiredFields},
		{"senha curta", RegisterForm{Name: "A", Email: "a@b.com", Password: "12345", ConfirmPassword: "12345"}, MsgPasswordTooShort},
		{"curta vence divergente", RegisterForm{Name: "A", Email: "a@b.com", Password: "123", ConfirmPassword: "999"}, MsgPasswordTooShort},
		{"ok", RegisterForm{Name: "A", Email: "a@b.com", Password: "123456", ConfirmPassword: "123456"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	assert.Equal(t, StrengthWeak, PasswordStrength("12345"))
	assert.Equal(t, StrengthMedium, PasswordStrength("123456"))
	assert.Equal(t, StrengthMedium, PasswordStrength("123456789"))
	assert.Equal(t, StrengthStrong, PasswordStrength("1234567890"))
	assert.Equal(t, StrengthMedium, PasswordStrength("çãéíóú"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Session
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_LoginCarregaUsuarioEFlags(t *testing.T) {
	_, srv := newFakeAPI(t)
	s := NewSession(New(srv.URL))

	require.NoError(t, s.Login(context.Background(), Credentials{Email: "diretor@cordoba.com", Password: "dir123"}))
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsDirector())
	assert.False(t, s.IsManager())
	assert.False(t, s.IsOperator())
	require.NotNil(t, s.Access())
	assert.True(t, s.Access().HasDataAccess)
}

func TestSession_Refresh401ApagaToken(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL)
	require.NoError(t, c.tokens.Save("expirado"))
	s := NewSession(c)

	err := s.Refresh(context.Background())
	assert.True(t, IsUnauthorized(err))
	assert.Nil(t, s.User())
	assert.False(t, c.IsAuthenticated())
}

func TestSession_RefreshOutroErroMantemToken(t *testing.T) {
	f, srv := newFakeAPI(t)
	c := New(srv.URL)
	s := NewSession(c)
	require.NoError(t, s.Login(context.Background(), Credentials{Email: "diretor@cordoba.com", Password: "dir123"}))

	f.meStatus.Store(http.StatusInternalServerError)
	err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Nil(t, s.User())
	assert.Nil(t, s.Access())
	assert.True(t, c.IsAuthenticated())
}

func TestSession_RefreshSemTokenNaoChamaRede(t *testing.T) {
	f, srv := newFakeAPI(t)
	s := NewSession(New(srv.URL))

	assert.NoError(t, s.Refresh(context.Background()))
	assert.False(t, s.IsAuthenticated())
	assert.Zero(t, f.calls.Load())
}

// ──────────────────────────────────────────────────────────────────────────────
// ErrorMessage e TokenStore
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "requisição falhou com status 502", ErrorMessage(&APIError{StatusCode: 502}))
	assert.Equal(t, "dial tcp: recusado", ErrorMessage(errors.New("dial tcp: recusado")))
	assert.Equal(t, "Erro desconhecido", ErrorMessage(errors.New("")))
	assert.Equal(t, "Erro desconhecido", ErrorMessage(nil))
}

func TestNewAPIError_DetailNaoString(t *testing.T) {
	e := newAPIError(422, []byte(`{"detail":[{"loc":["body"],"msg":"x"}]}`))
	assert.Empty(t, e.Detail)
	assert.Equal(t, 422, e.StatusCode)
}

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "sub", "token"))

	tok, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Save("abc"))
	tok, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	tok, _ = store.Load()
	assert.Empty(t, tok)
}
