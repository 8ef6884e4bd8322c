package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
	"github.com/cordobafintech/cobranca-api/pkg/jwt"
)

// NoTenantMessage é exibida a usuários que ainda não foram vinculados a um tenant.
const NoTenantMessage = "Você ainda não foi atribuído a nenhum tenant. Contate o administrador."

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: login, cadastro e resolução do usuário do token.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtCfg     JWTConfig
	hashCost   int
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tenantRepo: tenantRepo, jwtCfg: jwtCfg, hashCost: bcrypt.DefaultCost}
}

// WithHashCost troca o custo do bcrypt (testes usam bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.hashCost = cost
	return uc
}

// Login verifica email e senha e emite o token de acesso.
// Email inexistente, senha errada e usuário inativo devolvem o mesmo erro.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.TenantID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   jwt.TokenType,
		ExpiresIn:   uc.jwtCfg.ExpMinutes * 60,
	}, nil
}

// Register cadastra um usuário. Sem actor diretor, o perfil é sempre operador e sem tenant.
func (uc *AuthUseCase) Register(ctx context.Context, actor *entity.User, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role := entity.RoleOperador
	var tenantID *int64
	if actor != nil && actor.IsDirector() {
		if in.Role != "" {
			role = in.Role
		}
		if in.TenantID != nil {
			tenant, err := uc.tenantRepo.GetByID(ctx, *in.TenantID)
			if err != nil {
				return nil, err
			}
			if tenant == nil {
				return nil, domain.ErrTenantNotFound
			}
			tenantID = in.TenantID
		}
	}
	if !entity.ValidRole(role) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Perfil inválido: %s", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.hashCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		Role:         role,
		TenantID:     tenantID,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Authenticate resolve o usuário dono do token. Token ruim devolve ErrInvalidToken;
// usuário removido ou inativo devolve ErrInactiveUser.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := uc.userRepo.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}

// AccessStatus monta a visão de autorização do usuário.
func AccessStatus(user *entity.User) *dto.AccessStatusResponse {
	out := &dto.AccessStatusResponse{
		HasDataAccess: user.HasDataAccess(),
		IsDirector:    user.IsDirector(),
		TenantID:      user.TenantID,
		Role:          user.Role,
	}
	if !out.HasDataAccess {
		msg := NoTenantMessage
		out.Message = &msg
	}
	return out
}

// ToUserResponse converte a entidade para a resposta pública (sem hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		Role:        u.Role,
		TenantID:    u.TenantID,
		CreatedAt:   u.CreatedAt,
	}
}

// IsAuthError informa se err deve virar 401.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
