package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var hoje = time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC)

func dia(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestContrato_DiasAtraso(t *testing.T) {
	c := &Contrato{Status: ContratoAtivo, DataVencimento: dia(2024, 6, 1)}
	assert.Equal(t, 29, c.DiasAtraso(hoje))

	c.DataVencimento = dia(2024, 7, 10)
	assert.Equal(t, 0, c.DiasAtraso(hoje), "ainda não vencido")

	c.DataVencimento = dia(2024, 6, 30)
	assert.Equal(t, 0, c.DiasAtraso(hoje), "vence hoje")

	c.DataVencimento = dia(2023, 1, 1)
	c.Status = ContratoPago
	assert.Equal(t, 0, c.DiasAtraso(hoje), "contrato pago não atrasa")
}

func TestContrato_ValorPendente(t *testing.T) {
	c := &Contrato{ValorOriginal: decimal.RequireFromString("1000"), ValorPago: decimal.RequireFromString("250.50")}
	assert.True(t, c.ValorPendente().Equal(decimal.RequireFromString("749.50")))

	atualizado := decimal.RequireFromString("1200")
	c.ValorAtualizado = &atualizado
	assert.True(t, c.ValorPendente().Equal(decimal.RequireFromString("949.50")))

	c.ValorPago = decimal.RequireFromString("5000")
	assert.True(t, c.ValorPendente().IsZero(), "nunca negativo")
}

func TestFaixaPorDias(t *testing.T) {
	casos := map[int]string{
		0: FaixaEmDia, 1: FaixaD1a30, 30: FaixaD1a30, 31: FaixaD31a60, 60: FaixaD31a60,
		61: FaixaD61a90, 90: FaixaD61a90, 91: FaixaD91a180, 180: FaixaD91a180, 181: FaixaD180Mais,
	}
	for dias, esperado := range casos {
		assert.Equal(t, esperado, FaixaPorDias(dias), "dias=%d", dias)
	}
}

func TestContrato_FaixaAtraso(t *testing.T) {
	c := &Contrato{Status: ContratoAtrasado, DataVencimento: dia(2024, 3, 1)}
	assert.Equal(t, FaixaD91a180, c.FaixaAtraso(hoje))
}
