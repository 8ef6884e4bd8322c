// Package pdf gera o relatório PDF de uma importação de base.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Córdoba Fintech + tenant │ Relatório + data         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ARQUIVO: nome / tamanho / tipo / status / período           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Indicador | Quantidade                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ERROS: primeiras linhas com erro                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
)

// maxErrosRelatorio limita a seção de erros para o PDF não crescer sem controle.
const maxErrosRelatorio = 50

// ── Paleta ────────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 120}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ ports.ReportGenerator = (*ImportReportGenerator)(nil)

// ImportReportGenerator implementa ports.ReportGenerator com Maroto v2.
type ImportReportGenerator struct {
	now func() time.Time
}

// NewImportReportGenerator constrói o gerador.
func NewImportReportGenerator() *ImportReportGenerator {
	return &ImportReportGenerator{now: time.Now}
}

// ImportReport gera o PDF e devolve seus bytes.
func (g *ImportReportGenerator) ImportReport(log *entity.ImportacaoLog, tenantNome string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Importação", true).
		WithAuthor("Córdoba Fintech", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(log, tenantNome, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(arquivoRows(log)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(contadoresRows(log)...)

	if log.MensagemErro != "" || len(log.ErrosDetalhes) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(errosRows(log)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(log *entity.ImportacaoLog, tenantNome string, geradoEm time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Córdoba Fintech", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Tenant: "+nonEmpty(tenantNome, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO DE IMPORTAÇÃO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(log.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7,
			}),
			text.New("Gerado em "+geradoEm.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func arquivoRows(log *entity.ImportacaoLog) []core.Row {
	fim := "—"
	if log.DataFim != nil {
		fim = log.DataFim.Format("02/01/2006 15:04:05")
	}
	info := func(label, value string) core.Row {
		return row.New(5).Add(
			col.New(3).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
			col.New(9).Add(text.New(value, props.Text{Size: 8, Top: 1, Color: colorGray})),
		)
	}
	return []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("ARQUIVO", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}))),
		info("Nome:", log.NomeArquivo),
		info("Tamanho:", formatBytes(log.TamanhoArquivo)),
		info("Tipo:", log.TipoImportacao),
		info("Status:", log.Status),
		info("Início:", log.DataInicio.Format("02/01/2006 15:04:05")),
		info("Fim:", fim),
	}
}

func tableHeaderRow() core.Row {
	return row.New(8).Add(
		col.New(8).Add(text.New("Indicador", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Quantidade", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func contadoresRows(log *entity.ImportacaoLog) []core.Row {
	items := []struct {
		label string
		value int
	}{
		{"Total de linhas", log.TotalLinhas},
		{"Linhas processadas", log.LinhasProcessadas},
		{"Linhas com erro", log.LinhasComErro},
		{"Clientes criados", log.ClientesCriados},
		{"Clientes atualizados", log.ClientesAtualizados},
		{"Contratos criados", log.ContratosCriados},
		{"Contratos atualizados", log.ContratosAtualizados},
	}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(8).Add(text.New(it.label, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(formatInt(it.value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func errosRows(log *entity.ImportacaoLog) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("ERROS", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorRed, Top: 2,
		}))),
	}
	if log.MensagemErro != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(log.MensagemErro, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
		)))
	}
	erros := log.ErrosDetalhes
	if len(erros) > maxErrosRelatorio {
		erros = erros[:maxErrosRelatorio]
	}
	for _, e := range erros {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(e, props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	if rest := len(log.ErrosDetalhes) - len(erros); rest > 0 {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("... e mais %d erro(s)", rest), props.Text{Size: 7, Style: fontstyle.Italic, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatInt insere pontos de milhar: 25000 → "25.000".
func formatInt(n int) string {
	s := strconv.Itoa(n)
	neg := n < 0
	if neg {
		s = s[1:]
	}
	l := len(s)
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// formatBytes tamanho legível em B, KB ou MB.
func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
