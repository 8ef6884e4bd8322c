package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

func TestCommunication_Send(t *testing.T) {
	repo, disp := newFakeDisparos(), &fakeDispatcher{}
	uc := NewCommunicationUseCase(repo, disp, zerolog.Nop())

	out, err := uc.Send(context.Background(), operador(5, 1), dto.SendMessageRequest{Channel: "WhatsApp", To: "11999990000", Message: "Olá"})
	require.NoError(t, err)
	assert.Equal(t, entity.ChannelWhatsApp, out.Channel)
	assert.Equal(t, entity.DisparoSent, out.Status)
	assert.Equal(t, "prov-1", out.ProviderID)

	stored := repo.byID[out.ID]
	require.NotNil(t, stored)
	assert.Equal(t, int64(5), stored.UserID)
	assert.Equal(t, int64(1), *stored.TenantID)
	assert.NotNil(t, stored.UpdatedAt)
}

func TestCommunication_Send_CanalInvalido(t *testing.T) {
	disp := &fakeDispatcher{}
	uc := NewCommunicationUseCase(newFakeDisparos(), disp, zerolog.Nop())

	_, err := uc.Send(context.Background(), operador(5, 1), dto.SendMessageRequest{Channel: "telegram", To: "1", Message: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "Canal inválido", err.Error())
	assert.Zero(t, disp.calls)

	_, err = uc.Send(context.Background(), operador(5, 1), dto.SendMessageRequest{Channel: "sms", To: " ", Message: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommunication_Send_FalhaDoProvedor(t *testing.T) {
	repo := newFakeDisparos()
	uc := NewCommunicationUseCase(repo, &fakeDispatcher{err: errors.New("circuit breaker is open")}, zerolog.Nop())

	out, err := uc.Send(context.Background(), operador(5, 1), dto.SendMessageRequest{Channel: "sms", To: "1199", Message: "x"})
	require.NoError(t, err)
	assert.Equal(t, entity.DisparoFailed, out.Status)
	assert.Equal(t, "circuit breaker is open", out.Error)
	assert.Equal(t, entity.DisparoFailed, repo.byID[out.ID].Status)
}

func TestCommunication_HistoryEscopo(t *testing.T) {
	repo := newFakeDisparos()
	uc := NewCommunicationUseCase(repo, &fakeDispatcher{}, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.History(ctx, gerente(3), ptr(int64(9)), "", 0)
	require.NoError(t, err)
	require.NotNil(t, repo.lastTenant)
	assert.Equal(t, int64(3), *repo.lastTenant)

	_, err = uc.History(ctx, diretor(), nil, "voice", 10)
	require.NoError(t, err)
	assert.Nil(t, repo.lastTenant)
	assert.Equal(t, "voice", repo.lastChannel)

	_, err = uc.History(ctx, diretor(), nil, "fax", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommunication_Webhook(t *testing.T) {
	repo := newFakeDisparos()
	uc := NewCommunicationUseCase(repo, &fakeDispatcher{}, zerolog.Nop())
	ctx := context.Background()

	sent, err := uc.Send(ctx, operador(5, 1), dto.SendMessageRequest{Channel: "sms", To: "1199", Message: "x"})
	require.NoError(t, err)

	out, err := uc.Webhook(ctx, dto.ProviderWebhook{ProviderID: "prov-1", Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, sent.ID, out.ID)
	assert.Equal(t, entity.DisparoDelivered, repo.byID[sent.ID].Status)

	_, err = uc.Webhook(ctx, dto.ProviderWebhook{ProviderID: "nao-existe", Status: "read"})
	assert.ErrorIs(t, err, domain.ErrDisparoNotFound)

	_, err = uc.Webhook(ctx, dto.ProviderWebhook{ProviderID: "prov-1", Status: "bounced"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
