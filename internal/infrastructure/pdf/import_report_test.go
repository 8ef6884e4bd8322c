package pdf

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

func TestImportReport_GeraPDF(t *testing.T) {
	fim := time.Date(2026, 3, 1, 10, 5, 0, 0, time.UTC)
	erros := make([]string, 0, 60)
	for i := 1; i <= 60; i++ {
		erros = append(erros, fmt.Sprintf("Linha %d: CPF inválido", i+1))
	}
	log := &entity.ImportacaoLog{
		ID:             "0b7e9f1c-4a57-4d8e-9a51-0f5e3c7a9d10",
		NomeArquivo:    "base_marco.xlsx",
		TamanhoArquivo: 2048,
		TipoImportacao: entity.ImportIncremental,
		Status:         entity.ImportConcluido,
		TotalLinhas:    1500,
		LinhasComErro:  60,
		ErrosDetalhes:  erros,
		DataInicio:     fim.Add(-5 * time.Minute),
		DataFim:        &fim,
	}

	out, err := NewImportReportGenerator().ImportReport(log, "Cobra Mais")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestImportReport_SemErros(t *testing.T) {
	log := &entity.ImportacaoLog{ID: "x", NomeArquivo: "a.csv", Status: entity.ImportProcessando, DataInicio: time.Now()}

	out, err := NewImportReportGenerator().ImportReport(log, "")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", formatInt(0))
	assert.Equal(t, "999", formatInt(999))
	assert.Equal(t, "25.000", formatInt(25000))
	assert.Equal(t, "1.000.000", formatInt(1000000))
	assert.Equal(t, "-1.500", formatInt(-1500))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.0 KB", formatBytes(2048))
	assert.Equal(t, "1.5 MB", formatBytes(1536*1024))
}
