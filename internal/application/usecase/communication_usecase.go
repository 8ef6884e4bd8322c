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

const defaultHistoryLimit = 100

// CommunicationUseCase envio de mensagens de cobrança e acompanhamento dos disparos.
type CommunicationUseCase struct {
	repo       repository.DisparoRepository
	dispatcher ports.MessageDispatcher
	log        zerolog.Logger
	now        func() time.Time
}

// NewCommunicationUseCase constrói o caso de uso.
func NewCommunicationUseCase(repo repository.DisparoRepository, dispatcher ports.MessageDispatcher, log zerolog.Logger) *CommunicationUseCase {
	return &CommunicationUseCase{repo: repo, dispatcher: dispatcher, log: log, now: time.Now}
}

// Send registra o disparo e o entrega ao provedor. Falha do provedor não é erro da
// requisição: o disparo fica com status failed e a mensagem do erro.
func (uc *CommunicationUseCase) Send(ctx context.Context, actor *entity.User, in dto.SendMessageRequest) (*dto.DisparoResponse, error) {
	channel := strings.ToLower(strings.TrimSpace(in.Channel))
	if !entity.ValidChannel(channel) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Canal inválido")
	}
	to := strings.TrimSpace(in.To)
	msg := strings.TrimSpace(in.Message)
	if to == "" || msg == "" {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Destinatário e mensagem são obrigatórios")
	}

	d := &entity.Disparo{
		ID:        uuid.NewString(),
		TenantID:  actor.TenantID,
		UserID:    actor.ID,
		Channel:   channel,
		To:        to,
		Message:   msg,
		Status:    entity.DisparoQueued,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	providerID, err := uc.dispatcher.Send(ctx, channel, to, msg)
	if err != nil {
		uc.log.Warn().Err(err).Str("disparo_id", d.ID).Str("channel", channel).Msg("falha no envio")
		d.Status = entity.DisparoFailed
		d.Error = err.Error()
	} else {
		d.Status = entity.DisparoSent
		d.ProviderID = providerID
	}
	now := uc.now()
	d.UpdatedAt = &now
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDisparoResponse(d), nil
}

// History devolve os disparos mais recentes do escopo do usuário.
func (uc *CommunicationUseCase) History(ctx context.Context, actor *entity.User, requested *int64, channel string, limit int) ([]dto.DisparoResponse, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultHistoryLimit
	}
	channel = strings.ToLower(strings.TrimSpace(channel))
	if channel != "" && !entity.ValidChannel(channel) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Canal inválido")
	}
	scope := access.ResolveScope(actor, requested)
	list, err := uc.repo.List(ctx, scope.Filter(), channel, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DisparoResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDisparoResponse(d))
	}
	return out, nil
}

// Webhook aplica a atualização de status enviada pelo provedor.
func (uc *CommunicationUseCase) Webhook(ctx context.Context, in dto.ProviderWebhook) (*dto.DisparoResponse, error) {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if !entity.ValidDisparoStatus(status) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Status inválido: %s", in.Status)
	}
	d, err := uc.repo.GetByProviderID(ctx, strings.TrimSpace(in.ProviderID))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrDisparoNotFound
	}
	d.Status = status
	now := uc.now()
	d.UpdatedAt = &now
	if err := uc.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return toDisparoResponse(d), nil
}

func toDisparoResponse(d *entity.Disparo) *dto.DisparoResponse {
	return &dto.DisparoResponse{
		ID:         d.ID,
		Channel:    d.Channel,
		To:         d.To,
		Message:    d.Message,
		Status:     d.Status,
		ProviderID: d.ProviderID,
		Error:      d.Error,
		CreatedAt:  d.CreatedAt,
	}
}
