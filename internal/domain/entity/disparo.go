package entity

import "time"

// Canais de comunicação.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelVoice    = "voice"
	ChannelSMS      = "sms"
)

// Status de disparo.
const (
	DisparoQueued    = "queued"
	DisparoSent      = "sent"
	DisparoDelivered = "delivered"
	DisparoRead      = "read"
	DisparoFailed    = "failed"
)

// ValidChannel informa se ch é um canal suportado.
func ValidChannel(ch string) bool {
	switch ch {
	case ChannelWhatsApp, ChannelVoice, ChannelSMS:
		return true
	}
	return false
}

// ValidDisparoStatus informa se s é um status de disparo conhecido.
func ValidDisparoStatus(s string) bool {
	switch s {
	case DisparoQueued, DisparoSent, DisparoDelivered, DisparoRead, DisparoFailed:
		return true
	}
	return false
}

// Disparo é uma mensagem de cobrança enviada por WhatsApp, voz ou SMS.
type Disparo struct {
	ID         string // uuid
	TenantID   *int64
	UserID     int64
	Channel    string
	To         string
	Message    string
	Status     string
	ProviderID string
	Error      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
