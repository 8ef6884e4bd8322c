package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de contrato.
const (
	ContratoAtivo     = "ativo"
	ContratoPago      = "pago"
	ContratoAtrasado  = "atrasado"
	ContratoCancelado = "cancelado"
	ContratoNegociado = "negociado"
)

// Faixas de atraso (D+).
const (
	FaixaEmDia    = "Em dia"
	FaixaD1a30    = "D+1-30"
	FaixaD31a60   = "D+31-60"
	FaixaD61a90   = "D+61-90"
	FaixaD91a180  = "D+91-180"
	FaixaD180Mais = "D+180+"
)

// FaixasAtraso na ordem de exibição.
var FaixasAtraso = []string{FaixaEmDia, FaixaD1a30, FaixaD31a60, FaixaD61a90, FaixaD91a180, FaixaD180Mais}

// Contrato é uma dívida de um cliente.
type Contrato struct {
	ID              int64
	NumeroContrato  string
	TenantID        int64
	ClienteID       int64
	ValorOriginal   decimal.Decimal
	ValorAtualizado *decimal.Decimal
	ValorPago       decimal.Decimal
	DataContrato    *time.Time
	DataVencimento  time.Time
	DataPagamento   *time.Time
	Status          string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// DiasAtraso conta os dias desde o vencimento; zero se pago ou ainda não vencido.
func (c *Contrato) DiasAtraso(hoje time.Time) int {
	if c.Status == ContratoPago {
		return 0
	}
	return DaysPastDue(c.DataVencimento, hoje)
}

// ValorPendente = (atualizado ou original) - pago, nunca negativo.
func (c *Contrato) ValorPendente() decimal.Decimal {
	valor := c.ValorOriginal
	if c.ValorAtualizado != nil {
		valor = *c.ValorAtualizado
	}
	p := valor.Sub(c.ValorPago)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// FaixaAtraso classifica o contrato em uma das FaixasAtraso.
func (c *Contrato) FaixaAtraso(hoje time.Time) string {
	return FaixaPorDias(c.DiasAtraso(hoje))
}

// FaixaPorDias devolve a faixa D+ correspondente a dias de atraso.
func FaixaPorDias(dias int) string {
	switch {
	case dias <= 0:
		return FaixaEmDia
	case dias <= 30:
		return FaixaD1a30
	case dias <= 60:
		return FaixaD31a60
	case dias <= 90:
		return FaixaD61a90
	case dias <= 180:
		return FaixaD91a180
	default:
		return FaixaD180Mais
	}
}

// DaysPastDue devolve os dias corridos entre vencimento e hoje (datas, sem hora).
func DaysPastDue(vencimento, hoje time.Time) int {
	v := time.Date(vencimento.Year(), vencimento.Month(), vencimento.Day(), 0, 0, 0, 0, time.UTC)
	h := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.UTC)
	if !h.After(v) {
		return 0
	}
	return int(h.Sub(v).Hours() / 24)
}

// ValidContratoStatus informa se s é um status conhecido.
func ValidContratoStatus(s string) bool {
	switch s {
	case ContratoAtivo, ContratoPago, ContratoAtrasado, ContratoCancelado, ContratoNegociado:
		return true
	}
	return false
}
