package client

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Mensagens dos formulários de autenticação.
const (
	MsgRequiredFields   = "Por favor, preencha todos os campos obrigatórios"
	MsgLoginRequired    = "Por favor, preencha todos os campos"
	MsgInvalidEmail     = "Por favor, insira um e-mail válido"
	MsgPasswordTooShort = "A senha deve ter no mínimo 6 caracteres"
	MsgPasswordMismatch = "As senhas não coincidem"
)

const minPasswordLen = 6

// FormError falha de validação local; nunca chega à rede.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

// RegisterForm campos da tela de cadastro.
type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate aplica as regras na ordem da tela: obrigatórios, e-mail,
// tamanho da senha, confirmação.
func (f RegisterForm) Validate() error {
	if f.Name == "" || f.Email == "" || f.Password == "" || f.ConfirmPassword == "" {
		return &FormError{MsgRequiredFields}
	}
	if !strings.Contains(f.Email, "@") {
		return &FormError{MsgInvalidEmail}
	}
	if utf8.RuneCountInString(f.Password) < minPasswordLen {
		return &FormError{MsgPasswordTooShort}
	}
	if f.Password != f.ConfirmPassword {
		return &FormError{MsgPasswordMismatch}
	}
	return nil
}

// ValidateLogin checa o formulário de login.
func ValidateLogin(cred Credentials) error {
	if cred.Email == "" || cred.Password == "" {
		return &FormError{MsgLoginRequired}
	}
	if !strings.Contains(cred.Email, "@") {
		return &FormError{MsgInvalidEmail}
	}
	return nil
}

// Força da senha.
const (
	StrengthWeak   = "fraca"
	StrengthMedium = "media"
	StrengthStrong = "forte"
)

// PasswordStrength classifica pelo tamanho: <6 fraca, <10 média, senão forte.
func PasswordStrength(password string) string {
	switch n := utf8.RuneCountInString(password); {
	case n < minPasswordLen:
		return StrengthWeak
	case n < 10:
		return StrengthMedium
	default:
		return StrengthStrong
	}
}

// LoginValidated valida o formulário antes de chamar Login.
func (c *Client) LoginValidated(ctx context.Context, cred Credentials) (*LoginResponse, error) {
	if err := ValidateLogin(cred); err != nil {
		return nil, err
	}
	return c.Login(ctx, cred)
}

// RegisterValidated valida o formulário antes de chamar Register.
func (c *Client) RegisterValidated(ctx context.Context, f RegisterForm) (*User, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return c.Register(ctx, RegisterData{Name: f.Name, Email: f.Email, Password: f.Password})
}
