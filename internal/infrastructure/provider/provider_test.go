package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Canais
// ──────────────────────────────────────────────────────────────────────────────

func TestChannelClient_SemChaveSimula(t *testing.T) {
	c := NewChannelClient(config.ChannelsConfig{ProviderURL: "http://nao-usado"}, zerolog.Nop())

	id, err := c.Send(context.Background(), "whatsapp", "+5511999998888", "Olá")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "sim-"))
}

func TestChannelClient_EnviaAoProvedor(t *testing.T) {
	var got channelRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sms/messages", r.URL.Path)
		assert.Equal(t, "Bearer chave-sms", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"prov-123"}`))
	}))
	defer srv.Close()

	c := NewChannelClient(config.ChannelsConfig{ProviderURL: srv.URL + "/", SMSAPIKey: "chave-sms"}, zerolog.Nop())
	id, err := c.Send(context.Background(), "sms", "+5511999998888", "Sua fatura venceu")
	require.NoError(t, err)
	assert.Equal(t, "prov-123", id)
	assert.Equal(t, "+5511999998888", got.To)
	assert.Equal(t, "Sua fatura venceu", got.Message)
}

func TestChannelClient_ErroDoProvedor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "número inválido", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewChannelClient(config.ChannelsConfig{ProviderURL: srv.URL, VoiceAPIKey: "k"}, zerolog.Nop())
	_, err := c.Send(context.Background(), "voice", "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 422")
}

func TestChannelClient_BreakerAbreAposFalhas(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewChannelClient(config.ChannelsConfig{ProviderURL: srv.URL, WhatsAppAPIKey: "k"}, zerolog.Nop())
	for i := 0; i < 5; i++ {
		_, err := c.Send(context.Background(), "whatsapp", "x", "y")
		require.Error(t, err)
	}

	_, err := c.Send(context.Background(), "whatsapp", "x", "y")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, 5, calls)
}

func TestChannelClient_Erro4xxNaoAbreBreaker(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "número inválido", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewChannelClient(config.ChannelsConfig{ProviderURL: srv.URL, SMSAPIKey: "k"}, zerolog.Nop())
	for i := 0; i < 8; i++ {
		_, err := c.Send(context.Background(), "sms", "x", "y")
		require.Error(t, err)
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusBadRequest, se.Code)
	}
	assert.Equal(t, 8, calls)
	assert.Equal(t, gobreaker.StateClosed, c.breaker.State())
}

func TestCountsAsFailure(t *testing.T) {
	assert.False(t, countsAsFailure(nil))
	assert.False(t, countsAsFailure(&StatusError{Code: 404}))
	assert.False(t, countsAsFailure(fmt.Errorf("gateway: %w", &StatusError{Code: 422})))
	assert.True(t, countsAsFailure(&StatusError{Code: 503}))
	assert.True(t, countsAsFailure(errors.New("chamada HTTP falhou: connection refused")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Gateway
// ──────────────────────────────────────────────────────────────────────────────

func TestGatewayClient_SemURL(t *testing.T) {
	g := NewGatewayClient(config.PaymentConfig{}, zerolog.Nop())

	ref, err := g.CreateCharge(context.Background(), ports.Charge{ID: "p1", Amount: decimal.NewFromInt(10), Method: "pix"})
	require.NoError(t, err)
	assert.Empty(t, ref)
}

func TestGatewayClient_CriaCobranca(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/charges", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["external_id"])
		assert.Equal(t, "150.5", body["amount"])
		assert.Equal(t, "boleto", body["method"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ch_987"}`))
	}))
	defer srv.Close()

	g := NewGatewayClient(config.PaymentConfig{GatewayURL: srv.URL, GatewayAPIKey: "k"}, zerolog.Nop())
	ref, err := g.CreateCharge(context.Background(), ports.Charge{ID: "p1", Amount: decimal.RequireFromString("150.50"), Method: "boleto"})
	require.NoError(t, err)
	assert.Equal(t, "ch_987", ref)
}

func TestGatewayClient_RespostaSemID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	g := NewGatewayClient(config.PaymentConfig{GatewayURL: srv.URL}, zerolog.Nop())
	_, err := g.CreateCharge(context.Background(), ports.Charge{ID: "p1", Amount: decimal.NewFromInt(1), Method: "pix"})
	assert.Error(t, err)
}
