package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

const defaultPaymentsLimit = 100

// PaymentUseCase geração e baixa de cobranças.
type PaymentUseCase struct {
	repo      repository.PagamentoRepository
	contratos repository.ContratoRepository
	tx        repository.TxRunner
	gateway   ports.PaymentGateway
	log       zerolog.Logger
	now       func() time.Time
}

// NewPaymentUseCase constrói o caso de uso.
func NewPaymentUseCase(repo repository.PagamentoRepository, contratos repository.ContratoRepository, tx repository.TxRunner, gateway ports.PaymentGateway, log zerolog.Logger) *PaymentUseCase {
	return &PaymentUseCase{repo: repo, contratos: contratos, tx: tx, gateway: gateway, log: log, now: time.Now}
}

// Create registra a cobrança como pending e a envia ao gateway.
// Se o gateway falhar, a cobrança fica failed.
func (uc *PaymentUseCase) Create(ctx context.Context, actor *entity.User, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Valor inválido")
	}
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if !entity.ValidPaymentMethod(method) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Método de pagamento inválido")
	}

	tenantID := actor.TenantID
	if in.ContratoID != nil {
		c, err := uc.contratos.GetByID(ctx, *in.ContratoID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.Errorf(domain.ErrNotFound, "Contrato não encontrado")
		}
		if err := access.ValidateTenantAccess(actor, c.TenantID); err != nil {
			return nil, err
		}
		tenantID = &c.TenantID
	}

	p := &entity.Pagamento{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		UserID:      actor.ID,
		ContratoID:  in.ContratoID,
		Amount:      in.Amount.Round(2),
		Method:      method,
		Status:      entity.PaymentPending,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   uc.now(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	ref, err := uc.gateway.CreateCharge(ctx, ports.Charge{ID: p.ID, Amount: p.Amount, Method: p.Method, Description: p.Description})
	if err != nil {
		uc.log.Warn().Err(err).Str("payment_id", p.ID).Msg("gateway recusou a cobrança")
		p.Status = entity.PaymentFailed
	} else {
		p.GatewayRef = ref
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return toPaymentResponse(p), nil
}

// List devolve as cobranças: operador vê as que gerou, gerente e diretor as do escopo.
func (uc *PaymentUseCase) List(ctx context.Context, actor *entity.User, requested *int64, limit int) ([]dto.PaymentResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultPaymentsLimit
	}
	scope := access.ResolveScope(actor, requested)
	var userID *int64
	if actor.IsOperator() {
		userID = &actor.ID
	}
	list, err := uc.repo.List(ctx, scope.Filter(), userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toPaymentResponse(p))
	}
	return out, nil
}

// Get devolve uma cobrança visível para o usuário.
func (uc *PaymentUseCase) Get(ctx context.Context, actor *entity.User, id string) (*dto.PaymentResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !uc.visible(actor, p) {
		return nil, domain.ErrPaymentNotFound
	}
	return toPaymentResponse(p), nil
}

// Webhook aplica o status informado pelo gateway. Só cobranças pending mudam de status;
// paid repetido é ignorado, então a baixa no contrato acontece uma única vez.
func (uc *PaymentUseCase) Webhook(ctx context.Context, in dto.PaymentWebhook) (*dto.PaymentResponse, error) {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if !entity.ValidPaymentStatus(status) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Status inválido: %s", in.Status)
	}

	var out *dto.PaymentResponse
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		var (
			p   *entity.Pagamento
			err error
		)
		switch {
		case in.GatewayRef != "":
			p, err = repos.Pagamentos.GetByGatewayRef(ctx, in.GatewayRef)
		case in.ID != "":
			p, err = repos.Pagamentos.GetByID(ctx, in.ID)
		}
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrPaymentNotFound
		}
		if p.Status == entity.PaymentPaid && status == entity.PaymentPaid {
			out = toPaymentResponse(p)
			return nil
		}
		if p.Status != entity.PaymentPending || status == entity.PaymentPending {
			return domain.Errorf(domain.ErrInvalidInput, "Transição de status inválida: %s -> %s", p.Status, status)
		}
		p.Status = status
		if status == entity.PaymentPaid {
			now := uc.now()
			p.PaidAt = &now
			if p.ContratoID != nil {
				if err := repos.Baixas.ApplyPayment(ctx, *p.ContratoID, p.Amount, now); err != nil {
					return err
				}
			}
		}
		if err := repos.Pagamentos.Update(ctx, p); err != nil {
			return err
		}
		out = toPaymentResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *PaymentUseCase) visible(actor *entity.User, p *entity.Pagamento) bool {
	if actor.IsDirector() {
		return true
	}
	if actor.IsOperator() {
		return p.UserID == actor.ID
	}
	return p.TenantID != nil && actor.TenantID != nil && *p.TenantID == *actor.TenantID
}

func toPaymentResponse(p *entity.Pagamento) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:          p.ID,
		Amount:      p.Amount,
		Method:      p.Method,
		Status:      p.Status,
		Description: p.Description,
		ContratoID:  p.ContratoID,
		GatewayRef:  p.GatewayRef,
		CreatedAt:   p.CreatedAt,
		PaidAt:      p.PaidAt,
	}
}
