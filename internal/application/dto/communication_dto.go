package dto

import "time"

// SendMessageRequest entrada de POST /communication/send.
type SendMessageRequest struct {
	Channel string `json:"channel"`
	To      string `json:"to" validate:"required,max=40"`
	Message string `json:"message" validate:"required,max=4000"`
}

// DisparoResponse disparo registrado.
type DisparoResponse struct {
	ID         string    `json:"id"`
	Channel    string    `json:"channel"`
	To         string    `json:"to"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	ProviderID string    `json:"provider_id,omitempty"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProviderWebhook notificação de status enviada pelo provedor.
type ProviderWebhook struct {
	ProviderID string `json:"provider_id" validate:"required"`
	Status     string `json:"status" validate:"required"`
}
