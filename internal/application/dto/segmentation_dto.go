package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSegmentRequest entrada de POST /segmentation/.
type CreateSegmentRequest struct {
	Name           string `json:"name" validate:"required,max=120"`
	MinDaysOverdue int    `json:"min_days_overdue"`
	MaxDaysOverdue int    `json:"max_days_overdue"`
}

// SegmentResponse segmento persistido.
type SegmentResponse struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	MinDaysOverdue int       `json:"min_days_overdue"`
	MaxDaysOverdue int       `json:"max_days_overdue"`
	CreatedAt      time.Time `json:"created_at"`
}

// SimulateResponse resposta de GET /segmentation/simulate/:days.
type SimulateResponse struct {
	DaysOverdue int    `json:"days_overdue"`
	Segment     string `json:"segment"`
}

// SegmentContract contrato dentro de um segmento.
type SegmentContract struct {
	ContratoID     int64           `json:"contrato_id"`
	NumeroContrato string          `json:"numero_contrato"`
	Cliente        string          `json:"cliente"`
	CPFMascarado   string          `json:"cpf_mascarado"`
	Status         string          `json:"status"`
	ValorPendente  decimal.Decimal `json:"valor_pendente"`
	DiasAtraso     int             `json:"dias_atraso"`
	DataVencimento string          `json:"data_vencimento"`
}
