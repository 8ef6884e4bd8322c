package usecase

import (
	"context"
	"fmt"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

// Situação do cliente na listagem da base.
const (
	ClienteInadimplente = "inadimplente"
	ClienteQuitado      = "quitado"
	ClienteAtivo        = "ativo"
)

// CarteiraUseCase consultas da base de clientes.
type CarteiraUseCase struct {
	clientes    repository.ClienteRepository
	analytics   repository.AnalyticsRepository
	importacoes repository.ImportacaoRepository
}

// NewCarteiraUseCase constrói o caso de uso.
func NewCarteiraUseCase(clientes repository.ClienteRepository, analytics repository.AnalyticsRepository, importacoes repository.ImportacaoRepository) *CarteiraUseCase {
	return &CarteiraUseCase{clientes: clientes, analytics: analytics, importacoes: importacoes}
}

// Estatisticas devolve os números da base e a data da última importação concluída.
func (uc *CarteiraUseCase) Estatisticas(ctx context.Context, actor *entity.User, requested *int64) (*dto.EstatisticasBase, error) {
	tenantID := access.ResolveScope(actor, requested).Filter()
	stats, err := uc.analytics.GetBaseStats(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("carteira: estatísticas: %w", err)
	}
	out := &dto.EstatisticasBase{
		TotalClientes:     stats.TotalClientes,
		TotalContratos:    stats.TotalContratos,
		ValorTotal:        stats.ValorTotal.Round(2),
		ClientesComAtraso: stats.ClientesComAtraso,
	}
	last, err := uc.importacoes.Last(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("carteira: última importação: %w", err)
	}
	if last != nil {
		out.UltimaImportacao = last.DataFim
	}
	return out, nil
}

// Clientes lista os clientes da base com os totais dos contratos.
func (uc *CarteiraUseCase) Clientes(ctx context.Context, actor *entity.User, requested *int64, busca string, page dto.PageRequest) (*dto.ListaClientesBase, error) {
	page.Normalize()
	tenantID := access.ResolveScope(actor, requested).Filter()
	rows, total, err := uc.clientes.ListResumo(ctx, tenantID, busca, page.PorPagina, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("carteira: clientes: %w", err)
	}
	out := &dto.ListaClientesBase{
		Clientes:  make([]dto.ClienteBase, 0, len(rows)),
		Total:     total,
		Pagina:    page.Pagina,
		PorPagina: page.PorPagina,
	}
	for _, r := range rows {
		out.Clientes = append(out.Clientes, dto.ClienteBase{
			ID:             r.ID,
			Nome:           r.Nome,
			CPFMasked:      entity.MaskCPF(r.CPF),
			Telefone:       optional(r.Telefone),
			Email:          optional(r.Email),
			TotalContratos: r.TotalContratos,
			ValorTotal:     r.ValorTotal.Round(2),
			Status:         clienteStatus(r),
			DataCadastro:   r.CreatedAt,
		})
	}
	return out, nil
}

// clienteStatus inadimplente com qualquer contrato atrasado, quitado com todos pagos.
func clienteStatus(r repository.ClienteResumo) string {
	switch {
	case r.ContratosAtrasados > 0:
		return ClienteInadimplente
	case r.TotalContratos > 0 && r.ContratosPagos == r.TotalContratos:
		return ClienteQuitado
	}
	return ClienteAtivo
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
