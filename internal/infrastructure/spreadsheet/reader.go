package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain"
)

var _ ports.SheetReader = (*Reader)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader lê bases de devedores em CSV ou XLSX.
type Reader struct{}

// NewReader constrói o leitor de planilhas.
func NewReader() *Reader {
	return &Reader{}
}

// Read escolhe o formato pela extensão. Linhas totalmente vazias são descartadas.
func (r *Reader) Read(filename string, data []byte) (*ports.Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xlsx":
		return readXLSX(data)
	case ".xls":
		return nil, domain.Errorf(domain.ErrInvalidInput, "Formato .xls não suportado, salve como .xlsx")
	default:
		return nil, domain.Errorf(domain.ErrInvalidInput, "Formato inválido. Use CSV ou Excel (.csv, .xlsx, .xls)")
	}
}

// decodeText devolve o conteúdo em UTF-8: sem BOM, ou convertido de Windows-1252.
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decodificar windows-1252: %w", err)
	}
	return out, nil
}

// detectDelimiter compara ';' e ',' na primeira linha; empate fica com ','.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func readCSV(data []byte) (*ports.Sheet, error) {
	text, err := decodeText(data)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Não foi possível ler o arquivo CSV")
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.Comma = detectDelimiter(text)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Erro ao ler CSV: %s", err.Error())
		}
		records = append(records, rec)
	}
	return toSheet(records)
}

func readXLSX(data []byte) (*ports.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Não foi possível ler o arquivo Excel")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Arquivo está vazio")
	}
	// Valores crus: datas chegam como número serial e são convertidas no parse.
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Não foi possível ler o arquivo Excel")
	}
	return toSheet(records)
}

// toSheet separa cabeçalho e linhas, normalizando a largura de cada linha ao cabeçalho.
func toSheet(records [][]string) (*ports.Sheet, error) {
	var rows [][]string
	for _, rec := range records {
		if !blank(rec) {
			rows = append(rows, rec)
		}
	}
	if len(rows) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Arquivo está vazio")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}

	body := make([][]string, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		row := make([]string, len(headers))
		for i := range row {
			if i < len(rec) {
				row[i] = strings.TrimSpace(rec[i])
			}
		}
		body = append(body, row)
	}
	return &ports.Sheet{Headers: headers, Rows: body}, nil
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
