package importacao

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/pkg/documento"
)

// ParseCPF formata 11 dígitos como XXX.XXX.XXX-XX. ok=false para qualquer outra quantidade.
// Os dígitos verificadores não são conferidos.
func ParseCPF(raw string) (cpf string, ok bool) {
	cpf, err := documento.FormatCPF(raw)
	if err != nil {
		return strings.TrimSpace(raw), false
	}
	return cpf, true
}

// Digits devolve somente os dígitos de s.
func Digits(s string) string { return documento.Digits(s) }

// ParseMoney aceita "R$ 1.234,56", "1234,56", "1.234.567" e "1234.56".
// Vírgula presente indica formato brasileiro; ok=false se não for número.
func ParseMoney(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return decimal.Zero, false
	}
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/06",
}

// excelEpoch dia zero das datas seriais do Excel (sistema 1900, com o bug do 29/02/1900).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ParseDate aceita dd/mm/aaaa, aaaa-mm-dd, dd-mm-aaaa e datas seriais do Excel.
func ParseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}
	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseSexo devolve M, F ou O; vazio quando a célula está vazia.
func ParseSexo(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case "":
		return ""
	case "M", "MASCULINO", "MASC", "MALE":
		return entity.SexoMasculino
	case "F", "FEMININO", "FEM", "FEMALE":
		return entity.SexoFeminino
	}
	return entity.SexoOutro
}

// ParseStatus traduz sinônimos para o status do contrato; desconhecido vira ativo.
func ParseStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pago", "quitado", "paid":
		return entity.ContratoPago
	case "atrasado", "atraso", "vencido", "late", "overdue":
		return entity.ContratoAtrasado
	case "cancelado", "cancelled":
		return entity.ContratoCancelado
	case "negociado", "renegociado":
		return entity.ContratoNegociado
	}
	return entity.ContratoAtivo
}

// ParseEstado devolve as duas primeiras letras em maiúsculas.
func ParseEstado(raw string) string {
	r := []rune(strings.ToUpper(strings.TrimSpace(raw)))
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
