package importacao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

func TestParseCPF(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12345678901", "123.456.789-01", true},
		{"123.456.789-01", "123.456.789-01", true},
		{" 123 456 789 01 ", "123.456.789-01", true},
		{"123.456.789-00", "123.456.789-00", true}, // dígito verificador não é conferido
		{"1234567890", "1234567890", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseCPF(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseMoney(t *testing.T) {
	cases := map[string]string{
		"R$ 1.234,56": "1234.56",
		"1234,5":      "1234.5",
		"1234.56":     "1234.56",
		"1.234.567":   "1234567",
		"890":         "890",
		"R$1500":      "1500",
	}
	for in, want := range cases {
		v, ok := ParseMoney(in)
		require.True(t, ok, in)
		assert.Equal(t, want, v.String(), in)
	}
	for _, in := range []string{"", "abc", "R$"} {
		_, ok := ParseMoney(in)
		assert.False(t, ok, in)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"31/12/2024", "2024-12-31", "31-12-2024", "2024-12-31 10:30:00", "45657"} {
		got, ok := ParseDate(in)
		require.True(t, ok, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
	}
	for _, in := range []string{"", "31/02/2024", "amanhã"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, in)
	}
}

func TestParseSexoEStatus(t *testing.T) {
	assert.Equal(t, entity.SexoMasculino, ParseSexo("masculino"))
	assert.Equal(t, entity.SexoFeminino, ParseSexo(" f "))
	assert.Equal(t, entity.SexoOutro, ParseSexo("não informado"))
	assert.Equal(t, "", ParseSexo(""))

	assert.Equal(t, entity.ContratoPago, ParseStatus("Quitado"))
	assert.Equal(t, entity.ContratoAtrasado, ParseStatus("vencido"))
	assert.Equal(t, entity.ContratoNegociado, ParseStatus("renegociado"))
	assert.Equal(t, entity.ContratoCancelado, ParseStatus("cancelled"))
	assert.Equal(t, entity.ContratoAtivo, ParseStatus("qualquer"))
	assert.Equal(t, entity.ContratoAtivo, ParseStatus(""))
}

func TestParseEstado(t *testing.T) {
	assert.Equal(t, "SP", ParseEstado("sp"))
	assert.Equal(t, "SÃ", ParseEstado("São Paulo"))
	assert.Equal(t, "", ParseEstado(" "))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Joã", truncate("João", 3))
	assert.Equal(t, "Ana", truncate("Ana", 50))
}
