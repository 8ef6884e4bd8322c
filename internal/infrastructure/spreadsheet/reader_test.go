package spreadsheet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// CSV
// ──────────────────────────────────────────────────────────────────────────────

func TestRead_CSVPontoEVirgulaComBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("CPF;Nome;Valor\n123.456.789-01;Maria;1.500,00\n\n;;\n")...)

	sheet, err := NewReader().Read("base.csv", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"CPF", "Nome", "Valor"}, sheet.Headers)
	assert.Equal(t, [][]string{{"123.456.789-01", "Maria", "1.500,00"}}, sheet.Rows)
}

func TestRead_CSVVirgulaComAspas(t *testing.T) {
	data := []byte("cpf,nome,endereco\n12345678901,João,\"Rua A, 123\"\n")

	sheet, err := NewReader().Read("BASE.CSV", data)
	require.NoError(t, err)
	assert.Equal(t, "Rua A, 123", sheet.Rows[0][2])
	assert.Equal(t, "João", sheet.Rows[0][1])
}

func TestRead_CSVWindows1252(t *testing.T) {
	// "José;São Paulo" em Windows-1252.
	data := []byte("nome;cidade\nJos\xe9;S\xe3o Paulo\n")

	sheet, err := NewReader().Read("base.csv", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"José", "São Paulo"}, sheet.Rows[0])
}

func TestRead_CSVLinhasCurtasSaoCompletadas(t *testing.T) {
	data := []byte("a,b,c\n1\n")

	sheet, err := NewReader().Read("x.csv", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "", ""}, sheet.Rows[0])
}

func TestRead_CSVVazio(t *testing.T) {
	_, err := NewReader().Read("x.csv", []byte("\n\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "Arquivo está vazio", err.Error())
}

func TestDetectDelimiter(t *testing.T) {
	assert.Equal(t, ';', detectDelimiter([]byte("a;b;c\n1,5;2;3")))
	assert.Equal(t, ',', detectDelimiter([]byte("a,b\n")))
	assert.Equal(t, ',', detectDelimiter([]byte("a")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Formatos
// ──────────────────────────────────────────────────────────────────────────────

func TestRead_XLSRecusado(t *testing.T) {
	_, err := NewReader().Read("base.xls", []byte{0xD0, 0xCF})
	require.Error(t, err)
	assert.Equal(t, "Formato .xls não suportado, salve como .xlsx", err.Error())
}

func TestRead_ExtensaoInvalida(t *testing.T) {
	_, err := NewReader().Read("base.pdf", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestRead_XLSXCorrompido(t *testing.T) {
	_, err := NewReader().Read("base.xlsx", []byte("não é zip"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// XLSX
// ──────────────────────────────────────────────────────────────────────────────

func TestRead_XLSXDataComoSerial(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"CPF", "Vencimento", "Valor"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "123.456.789-01"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 45658)) // 2025-01-01
	require.NoError(t, f.SetCellValue("Sheet1", "C2", 1500.5))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheet, err := NewReader().Read("base.xlsx", buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"CPF", "Vencimento", "Valor"}, sheet.Headers)
	assert.Equal(t, []string{"123.456.789-01", "45658", "1500.5"}, sheet.Rows[0])
}

func TestWriter_XLSXLidoDeVolta(t *testing.T) {
	headers := []string{"cpf", "nome"}
	rows := [][]string{{"123.456.789-01", "Maria"}, {"987.654.321-00", "João"}}

	data, err := NewWriter().Write(ports.FormatXLSX, "Devedores", headers, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"Devedores"}, f.GetSheetList())
	_ = f.Close()

	sheet, err := NewReader().Read("template.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, headers, sheet.Headers)
	assert.Equal(t, rows, sheet.Rows)
}

func TestWriter_CSVComBOM(t *testing.T) {
	data, err := NewWriter().Write(ports.FormatCSV, "", []string{"a", "b"}, [][]string{{"Rua A, 1", "x"}})
	require.NoError(t, err)
	assert.Equal(t, "\ufeffa,b\n\"Rua A, 1\",x\n", string(data))
}

func TestWriter_FormatoDesconhecido(t *testing.T) {
	_, err := NewWriter().Write("ods", "x", nil, nil)
	assert.Error(t, err)
}
