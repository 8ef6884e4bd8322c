package client

import (
	"context"
	"sync"
)

// Session mantém o usuário logado e seu AccessStatus, com as flags de
// perfil derivadas do role.
type Session struct {
	client *Client

	mu     sync.RWMutex
	user   *User
	access *AccessStatus
}

func NewSession(c *Client) *Session { return &Session{client: c} }

// Login autentica e recarrega o usuário. O erro do login volta sem mexer no estado.
func (s *Session) Login(ctx context.Context, cred Credentials) error {
	if _, err := s.client.Login(ctx, cred); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Refresh recarrega usuário e AccessStatus. Qualquer erro limpa o estado
// local; só um 401 apaga também o token.
func (s *Session) Refresh(ctx context.Context) error {
	if !s.client.IsAuthenticated() {
		s.set(nil, nil)
		return nil
	}

	user, err := s.client.CurrentUser(ctx)
	if err == nil {
		var access *AccessStatus
		access, err = s.client.AccessStatus(ctx)
		if err == nil {
			s.set(user, access)
			return nil
		}
	}

	s.set(nil, nil)
	if IsUnauthorized(err) {
		_ = s.client.Logout()
	}
	return err
}

// Logout apaga o token e o estado local.
func (s *Session) Logout() error {
	s.set(nil, nil)
	return s.client.Logout()
}

func (s *Session) set(u *User, a *AccessStatus) {
	s.mu.Lock()
	s.user, s.access = u, a
	s.mu.Unlock()
}

func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) Access() *AccessStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *Session) IsAuthenticated() bool { return s.User() != nil }

func (s *Session) role() string {
	if u := s.User(); u != nil {
		return u.Role
	}
	return ""
}

func (s *Session) IsDirector() bool { return s.role() == RoleDiretor }
func (s *Session) IsManager() bool  { return s.role() == RoleGerente }
func (s *Session) IsOperator() bool { return s.role() == RoleOperador }
