package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/pkg/config"
)

var _ ports.MessageDispatcher = (*ChannelClient)(nil)

// ChannelClient envia mensagens de cobrança ao provedor de WhatsApp, voz e SMS.
// Canal sem API key (ou sem URL do provedor) é simulado: devolve um id "sim-<uuid>".
type ChannelClient struct {
	baseURL    string
	keys       map[string]string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        zerolog.Logger
}

// NewChannelClient constrói o cliente a partir da configuração de canais.
func NewChannelClient(cfg config.ChannelsConfig, log zerolog.Logger) *ChannelClient {
	return &ChannelClient{
		baseURL: strings.TrimRight(cfg.ProviderURL, "/"),
		keys: map[string]string{
			entity.ChannelWhatsApp: cfg.WhatsAppAPIKey,
			entity.ChannelVoice:    cfg.VoiceAPIKey,
			entity.ChannelSMS:      cfg.SMSAPIKey,
		},
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    newBreaker("channel-provider", log),
		log:        log,
	}
}

type channelRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type channelResponse struct {
	ID string `json:"id"`
}

// Send entrega a mensagem e devolve o id do provedor.
func (c *ChannelClient) Send(ctx context.Context, channel, to, message string) (string, error) {
	key := c.keys[channel]
	if key == "" || c.baseURL == "" {
		id := "sim-" + uuid.NewString()
		c.log.Info().Str("channel", channel).Str("provider_id", id).Msg("envio simulado: canal sem credenciais")
		return id, nil
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, channel)
	raw, err := c.breaker.Execute(func() ([]byte, error) {
		return postJSON(ctx, c.httpClient, url, key, channelRequest{To: to, Message: message})
	})
	if err != nil {
		return "", fmt.Errorf("provedor %s: %w", channel, err)
	}

	var resp channelResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("provedor %s: resposta inválida: %w", channel, err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("provedor %s: resposta sem id", channel)
	}
	return resp.ID, nil
}
