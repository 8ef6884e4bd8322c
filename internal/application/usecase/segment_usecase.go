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
)

const segmentContractsLimit = 500

// SegmentUseCase segmentação da carteira por dias de atraso.
type SegmentUseCase struct {
	segments  repository.SegmentoRepository
	contratos repository.ContratoRepository
	now       func() time.Time
}

// NewSegmentUseCase constrói o caso de uso.
func NewSegmentUseCase(segments repository.SegmentoRepository, contratos repository.ContratoRepository) *SegmentUseCase {
	return &SegmentUseCase{segments: segments, contratos: contratos, now: time.Now}
}

// Create valida o intervalo e grava o segmento no tenant de trabalho do usuário.
func (uc *SegmentUseCase) Create(ctx context.Context, actor *entity.User, requested *int64, in dto.CreateSegmentRequest) (*dto.SegmentResponse, error) {
	if in.MinDaysOverdue < 0 || in.MaxDaysOverdue < 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Dias de atraso inválidos")
	}
	if in.MinDaysOverdue > in.MaxDaysOverdue {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Intervalo inválido")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Nome do segmento obrigatório")
	}
	tenantID, err := access.OperatingTenant(actor, requested)
	if err != nil {
		return nil, err
	}
	existing, err := uc.segments.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, s := range existing {
		if s.Overlaps(in.MinDaysOverdue, in.MaxDaysOverdue) {
			return nil, domain.Errorf(domain.ErrConflict, "Intervalo sobrepõe o segmento %s", s.Name)
		}
	}
	seg := &entity.Segmento{
		TenantID:       tenantID,
		Name:           name,
		MinDaysOverdue: in.MinDaysOverdue,
		MaxDaysOverdue: in.MaxDaysOverdue,
		CreatedAt:      uc.now(),
	}
	if err := uc.segments.Create(ctx, seg); err != nil {
		return nil, err
	}
	return toSegmentResponse(seg), nil
}

// List devolve os segmentos do tenant de trabalho.
func (uc *SegmentUseCase) List(ctx context.Context, actor *entity.User, requested *int64) ([]dto.SegmentResponse, error) {
	tenantID, err := access.OperatingTenant(actor, requested)
	if err != nil {
		return nil, err
	}
	list, err := uc.segments.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SegmentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSegmentResponse(s))
	}
	return out, nil
}

// Delete remove um segmento do tenant do usuário.
func (uc *SegmentUseCase) Delete(ctx context.Context, actor *entity.User, id int64) error {
	seg, err := uc.get(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.segments.Delete(ctx, seg.ID)
}

// Simulate devolve o segmento em que cairia um contrato com days de atraso.
// Sem segmento configurado que cubra days, usa as faixas padrão.
func (uc *SegmentUseCase) Simulate(ctx context.Context, actor *entity.User, requested *int64, days int) (*dto.SimulateResponse, error) {
	if days < 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Dias inválidos")
	}
	out := &dto.SimulateResponse{DaysOverdue: days, Segment: entity.DefaultSegmentFor(days)}
	tenantID, err := access.OperatingTenant(actor, requested)
	if err != nil {
		return out, nil
	}
	list, err := uc.segments.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		if s.Contains(days) {
			out.Segment = s.Name
			break
		}
	}
	return out, nil
}

// Contracts lista os contratos em aberto cujo atraso cai no segmento.
func (uc *SegmentUseCase) Contracts(ctx context.Context, actor *entity.User, id int64) ([]dto.SegmentContract, error) {
	seg, err := uc.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.contratos.ListByDaysOverdue(ctx, seg.TenantID, seg.MinDaysOverdue, seg.MaxDaysOverdue, uc.now(), segmentContractsLimit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SegmentContract, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SegmentContract{
			ContratoID:     r.ContratoID,
			NumeroContrato: r.NumeroContrato,
			Cliente:        r.ClienteNome,
			CPFMascarado:   entity.MaskCPF(r.CPF),
			Status:         r.Status,
			ValorPendente:  r.ValorPendente,
			DiasAtraso:     r.DiasAtraso,
			DataVencimento: r.DataVencimento.Format(time.DateOnly),
		})
	}
	return out, nil
}

func (uc *SegmentUseCase) get(ctx context.Context, actor *entity.User, id int64) (*entity.Segmento, error) {
	seg, err := uc.segments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if seg == nil {
		return nil, domain.ErrSegmentNotFound
	}
	if err := access.ValidateTenantAccess(actor, seg.TenantID); err != nil {
		return nil, err
	}
	return seg, nil
}

func toSegmentResponse(s *entity.Segmento) *dto.SegmentResponse {
	return &dto.SegmentResponse{
		ID:             s.ID,
		Name:           s.Name,
		MinDaysOverdue: s.MinDaysOverdue,
		MaxDaysOverdue: s.MaxDaysOverdue,
		CreatedAt:      s.CreatedAt,
	}
}
