package importacao

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/domain"
)

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "data_de_vencimento", NormalizeHeader(" Data de  Vencimento "))
	assert.Equal(t, "situacao", NormalizeHeader("Situação"))
	assert.Equal(t, "cpf", NormalizeHeader("CPF"))
	assert.Equal(t, "e-mail", NormalizeHeader("E-mail"))
}

func TestMapColumns_Alternativas(t *testing.T) {
	headers := []string{"Documento", "Nome Cliente", "Valor Devido", "Data Vcto", "Celular", "UF", "Situação"}
	m, err := MapColumns(headers)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"cpf":        "Documento",
		"nome":       "Nome Cliente",
		"valor":      "Valor Devido",
		"vencimento": "Data Vcto",
		"telefone":   "Celular",
		"estado":     "UF",
		"status":     "Situação",
	}, m.Headers())

	row := []string{" 123.456.789-01 ", "Ana", "10", "01/01/2025", "1199", "sp"}
	assert.Equal(t, "123.456.789-01", m.Value(row, "cpf"))
	assert.Equal(t, "", m.Value(row, "status"), "linha mais curta que o cabeçalho")
	assert.Equal(t, "", m.Value(row, "email"))
	assert.True(t, m.Has("estado"))
	assert.False(t, m.Has("cep"))
}

func TestMapColumns_ObrigatoriaAusente(t *testing.T) {
	_, err := MapColumns([]string{"cpf", "nome", "valor"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t,
		"Coluna obrigatória não encontrada: vencimento. Possíveis nomes: ['vencimento', 'data_vencimento', 'dt_vencimento', 'due_date', 'data_vcto']",
		err.Error())
}

func TestEstrutura(t *testing.T) {
	e := Estrutura()
	require.Len(t, e.Obrigatorios, 4)
	assert.Equal(t, "cpf", e.Obrigatorios[0].Nome)
	assert.Equal(t, "vencimento", e.Obrigatorios[3].Nome)
	assert.Len(t, e.Opcionais, len(OptionalFields))
	assert.Contains(t, e.Opcionais[0].Alternativas, "dt_nasc")
}
