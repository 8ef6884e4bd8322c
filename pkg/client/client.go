// Package client é o cliente Go da API de cobrança: login, cadastro e
// consulta do usuário autenticado, com o token guardado num TokenStore.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Roles reconhecidos pela API.
const (
	RoleOperador = "operador"
	RoleGerente  = "gerente"
	RoleDiretor  = "diretor"
)

// Credentials dados do formulário de login. Email vai no campo username.
type Credentials struct {
	Email    string
	Password string
}

// LoginResponse resposta de POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User usuário como a API devolve.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	Role        string    `json:"role"`
	TenantID    *int64    `json:"tenant_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccessStatus visão de autorização do usuário atual.
type AccessStatus struct {
	HasDataAccess bool    `json:"has_data_access"`
	IsDirector    bool    `json:"is_director"`
	TenantID      *int64  `json:"tenant_id"`
	Role          string  `json:"role"`
	Message       *string `json:"message"`
}

// RegisterData corpo de POST /users/.
type RegisterData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Client fala com a API. É seguro para uso concorrente.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
}

// Option ajusta o Client na construção.
type Option func(*Client)

// WithHTTPClient troca o http.Client usado nas requisições.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore troca onde o token é guardado (padrão: memória).
func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.tokens = s }
}

// New cria um cliente para baseURL, por exemplo "http://localhost:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  NewMemoryTokenStore(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login envia as credenciais como formulário e guarda o access_token.
// Em falha o token guardado não é alterado.
func (c *Client) Login(ctx context.Context, cred Credentials) (*LoginResponse, error) {
	form := url.Values{}
	form.Set("username", cred.Email)
	form.Set("password", cred.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var out LoginResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out.AccessToken != "" {
		if err := c.tokens.Save(out.AccessToken); err != nil {
			return nil, fmt.Errorf("salvar token: %w", err)
		}
	}
	return &out, nil
}

// Logout apaga o token local. O servidor não é avisado.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// IsAuthenticated diz se há token guardado, sem checar validade.
func (c *Client) IsAuthenticated() bool {
	tok, err := c.tokens.Load()
	return err == nil && tok != ""
}

// Register cadastra um usuário.
func (c *Client) Register(ctx context.Context, data RegisterData) (*User, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/users/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var u User
	if err := c.do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CurrentUser busca GET /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var u User
	if err := c.do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// AccessStatus busca GET /auth/me/access-status.
func (c *Client) AccessStatus(ctx context.Context) (*AccessStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/me/access-status", nil)
	if err != nil {
		return nil, err
	}
	var st AccessStatus
	if err := c.do(req, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// newRequest monta a requisição com o Bearer do token guardado, se houver.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if tok, err := c.tokens.Load(); err == nil && tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decodificar resposta: %w", err)
	}
	return nil
}
