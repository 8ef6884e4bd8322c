package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/pkg/config"
)

var _ ports.PaymentGateway = (*GatewayClient)(nil)

// GatewayClient registra cobranças no gateway de pagamentos.
// Sem PAYMENT_GATEWAY_URL a cobrança fica só local e a referência é vazia.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

// NewGatewayClient constrói o cliente do gateway.
func NewGatewayClient(cfg config.PaymentConfig, log zerolog.Logger) *GatewayClient {
	return &GatewayClient{
		baseURL:    strings.TrimRight(cfg.GatewayURL, "/"),
		apiKey:     cfg.GatewayAPIKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker:    newBreaker("payment-gateway", log),
	}
}

type chargeRequest struct {
	ExternalID  string          `json:"external_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description,omitempty"`
}

type chargeResponse struct {
	ID string `json:"id"`
}

// CreateCharge devolve a referência externa da cobrança.
func (g *GatewayClient) CreateCharge(ctx context.Context, charge ports.Charge) (string, error) {
	if g.baseURL == "" {
		return "", nil
	}

	payload := chargeRequest{ExternalID: charge.ID, Amount: charge.Amount, Method: charge.Method, Description: charge.Description}
	raw, err := g.breaker.Execute(func() ([]byte, error) {
		return postJSON(ctx, g.httpClient, g.baseURL+"/charges", g.apiKey, payload)
	})
	if err != nil {
		return "", fmt.Errorf("gateway: %w", err)
	}

	var resp chargeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("gateway: resposta inválida: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("gateway: resposta sem id")
	}
	return resp.ID, nil
}
