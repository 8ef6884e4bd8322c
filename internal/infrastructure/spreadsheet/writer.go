package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
)

var _ ports.SheetWriter = (*Writer)(nil)

// Writer gera planilhas XLSX ou CSV.
type Writer struct{}

// NewWriter constrói o gerador de planilhas.
func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Write(format, sheetName string, headers []string, rows [][]string) ([]byte, error) {
	switch format {
	case ports.FormatXLSX:
		return writeXLSX(sheetName, headers, rows)
	case ports.FormatCSV:
		return writeCSV(headers, rows)
	default:
		return nil, fmt.Errorf("spreadsheet: formato não suportado: %s", format)
	}
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	// BOM para o Excel abrir acentos corretamente.
	buf.Write(utf8BOM)
	cw := csv.NewWriter(&buf)
	if err := cw.Write(headers); err != nil {
		return nil, fmt.Errorf("spreadsheet: csv: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("spreadsheet: csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSX(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheetName == "" {
		sheetName = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
	}
	if len(headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(headers), 1)
		if err != nil {
			return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
		}
		if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
			return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
		}
		r := row
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
