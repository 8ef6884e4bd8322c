package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
	"github.com/cordobafintech/cobranca-api/pkg/documento"
)

// TenantUseCase cadastro e consulta de tenants.
type TenantUseCase struct {
	repo repository.TenantRepository
}

// NewTenantUseCase constrói o caso de uso.
func NewTenantUseCase(repo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{repo: repo}
}

// Create cadastra um tenant com o CNPJ normalizado para XX.XXX.XXX/XXXX-XX.
// CNPJ repetido devolve ErrCNPJAlreadyExists.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	cnpj, err := documento.FormatCNPJ(in.CNPJ)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "CNPJ deve ter 14 dígitos")
	}
	existing, err := uc.repo.GetByCNPJ(ctx, cnpj)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCNPJAlreadyExists
	}
	t := &entity.Tenant{
		Nome:      strings.TrimSpace(in.Nome),
		CNPJ:      cnpj,
		Email:     strings.TrimSpace(in.Email),
		Telefone:  strings.TrimSpace(in.Telefone),
		Ativo:     true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// Get devolve o tenant se o usuário tiver acesso a ele.
func (uc *TenantUseCase) Get(ctx context.Context, actor *entity.User, id int64) (*dto.TenantResponse, error) {
	if err := access.ValidateTenantAccess(actor, id); err != nil {
		return nil, err
	}
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return toTenantResponse(t), nil
}

// Update aplica os campos informados.
func (uc *TenantUseCase) Update(ctx context.Context, id int64, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	if in.Nome != nil {
		t.Nome = strings.TrimSpace(*in.Nome)
	}
	if in.Email != nil {
		t.Email = strings.TrimSpace(*in.Email)
	}
	if in.Telefone != nil {
		t.Telefone = strings.TrimSpace(*in.Telefone)
	}
	if in.Ativo != nil {
		t.Ativo = *in.Ativo
	}
	now := time.Now()
	t.UpdatedAt = &now
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTenantResponse(t), nil
}

// List lista tenants (somente ativos se onlyActive).
func (uc *TenantUseCase) List(ctx context.Context, onlyActive bool) ([]dto.TenantResponse, error) {
	list, err := uc.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTenantResponse(t))
	}
	return out, nil
}

// Visible devolve os tenants do seletor: diretor vê todos os ativos, os demais apenas o próprio.
func (uc *TenantUseCase) Visible(ctx context.Context, actor *entity.User) ([]dto.TenantSimple, error) {
	if !actor.IsDirector() {
		if actor.TenantID == nil {
			return []dto.TenantSimple{}, nil
		}
		t, err := uc.repo.GetByID(ctx, *actor.TenantID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return []dto.TenantSimple{}, nil
		}
		return []dto.TenantSimple{{ID: t.ID, Nome: t.Nome, CNPJ: t.CNPJ}}, nil
	}
	list, err := uc.repo.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TenantSimple, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TenantSimple{ID: t.ID, Nome: t.Nome, CNPJ: t.CNPJ})
	}
	return out, nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Nome:      t.Nome,
		CNPJ:      t.CNPJ,
		Email:     t.Email,
		Telefone:  t.Telefone,
		Ativo:     t.Ativo,
		CreatedAt: t.CreatedAt,
	}
}
