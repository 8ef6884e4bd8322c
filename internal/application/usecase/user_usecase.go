package usecase

import (
	"context"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/auth"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

// UserUseCase consultas de usuários respeitando o escopo de tenant.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devolve os usuários visíveis para actor: diretor vê todos, os demais o próprio tenant.
func (uc *UserUseCase) List(ctx context.Context, actor *entity.User, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.Normalize()
	scope := access.ResolveScope(actor, nil)
	users, err := uc.repo.List(ctx, scope.Filter(), page.PorPagina, page.Offset())
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}
