// Package analytics contém os casos de uso dos dashboards da carteira de cobrança.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cordobafintech/cobranca-api/internal/application/access"
	"github.com/cordobafintech/cobranca-api/internal/application/auth"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

const dashboardTopDevedores = 10

// consolidadoParalelismo limita os painéis montados ao mesmo tempo no consolidado.
// Cada painel abre quatro consultas, então o pico fica em 16 conexões.
const consolidadoParalelismo = 4

// DashboardUseCase monta os painéis a partir do AnalyticsRepository (consultas somente leitura).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	tenantRepo    repository.TenantRepository
	now           func() time.Time
}

// NewDashboardUseCase constrói o caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, tenantRepo repository.TenantRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, tenantRepo: tenantRepo, now: time.Now}
}

// Principal devolve o dashboard principal no escopo do usuário.
func (uc *DashboardUseCase) Principal(ctx context.Context, actor *entity.User, requested *int64) (*dto.DashboardPrincipal, error) {
	scope := access.ResolveScope(actor, requested)
	return uc.principal(ctx, scope.Filter())
}

// Consolidado devolve o total geral e um painel por tenant ativo. Somente diretor.
func (uc *DashboardUseCase) Consolidado(ctx context.Context, actor *entity.User) (*dto.DashboardConsolidado, error) {
	if !actor.IsDirector() {
		return nil, domain.ErrRoleDenied
	}
	tenants, err := uc.tenantRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tenants: %w", err)
	}

	out := &dto.DashboardConsolidado{PorTenant: make([]dto.DashboardPrincipal, len(tenants))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(consolidadoParalelismo)
	g.Go(func() error {
		geral, err := uc.principal(gctx, nil)
		if err != nil {
			return err
		}
		out.TotalGeral = *geral
		return nil
	})
	for i, t := range tenants {
		id := t.ID
		g.Go(func() error {
			p, err := uc.principal(gctx, &id)
			if err != nil {
				return err
			}
			out.PorTenant[i] = *p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// principal consulta os agregados em paralelo; tenantID nil agrega todos os tenants.
func (uc *DashboardUseCase) principal(ctx context.Context, tenantID *int64) (*dto.DashboardPrincipal, error) {
	today := uc.now()

	type kpisResult struct {
		kpis repository.CarteiraKPIs
		err  error
	}
	type statusResult struct {
		rows []repository.StatusCount
		err  error
	}
	type groupResult struct {
		rows []repository.GroupCount
		err  error
	}
	type topResult struct {
		rows []repository.DevedorRanking
		err  error
	}

	kpisCh := make(chan kpisResult, 1)
	statusCh := make(chan statusResult, 1)
	faixasCh := make(chan groupResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		k, err := uc.analyticsRepo.GetKPIs(ctx, tenantID, today)
		kpisCh <- kpisResult{k, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetStatusDistribution(ctx, tenantID)
		statusCh <- statusResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetAgingBuckets(ctx, tenantID, today)
		faixasCh <- groupResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopDevedores(ctx, tenantID, today, dashboardTopDevedores)
		topCh <- topResult{rows, err}
	}()

	kpis := <-kpisCh
	status := <-statusCh
	faixas := <-faixasCh
	top := <-topCh

	if kpis.err != nil {
		return nil, fmt.Errorf("dashboard: kpis: %w", kpis.err)
	}
	if status.err != nil {
		return nil, fmt.Errorf("dashboard: distribuição por status: %w", status.err)
	}
	if faixas.err != nil {
		return nil, fmt.Errorf("dashboard: faixas de atraso: %w", faixas.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top devedores: %w", top.err)
	}

	out := &dto.DashboardPrincipal{
		TotalContratos:     kpis.kpis.TotalContratos,
		TotalDevedores:     kpis.kpis.TotalDevedores,
		ValorTotal:         kpis.kpis.ValorTotal.Round(2),
		ValorTotalCarteira: kpis.kpis.ValorTotal.Round(2),
		MediaAtraso:        round1(kpis.kpis.MediaAtraso),
		DistribuicaoStatus: buildDistribuicaoStatus(status.rows),
		FaixasAtraso:       buildFaixas(faixas.rows),
		TopDevedores:       buildTopDevedores(top.rows),
		TenantID:           tenantID,
	}
	for _, s := range status.rows {
		switch s.Status {
		case entity.ContratoAtivo:
			out.ContratosAtivos = s.Quantidade
		case entity.ContratoPago:
			out.ContratosPagos = s.Quantidade
		case entity.ContratoAtrasado:
			out.ContratosAtrasados = s.Quantidade
		}
	}
	out.Ativos, out.Quitados, out.Atrasados = out.ContratosAtivos, out.ContratosPagos, out.ContratosAtrasados

	if tenantID != nil {
		nome, err := uc.tenantName(ctx, *tenantID)
		if err != nil {
			return nil, err
		}
		out.TenantNome = nome
	}
	return out, nil
}

// AnaliseClientes devolve o dashboard de análise de clientes no escopo do usuário.
func (uc *DashboardUseCase) AnaliseClientes(ctx context.Context, actor *entity.User, requested *int64) (*dto.DashboardAnaliseClientes, error) {
	tenantID := access.ResolveScope(actor, requested).Filter()
	today := uc.now()

	var (
		wg                        sync.WaitGroup
		kpis                      repository.ClientesKPIs
		idades, sexos, faixaValor []repository.GroupCount
		errKPIs, errIdade         error
		errSexo, errValor         error
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		kpis, errKPIs = uc.analyticsRepo.GetClientesKPIs(ctx, tenantID, today)
	}()
	go func() {
		defer wg.Done()
		idades, errIdade = uc.analyticsRepo.GetAgeDistribution(ctx, tenantID, today)
	}()
	go func() {
		defer wg.Done()
		sexos, errSexo = uc.analyticsRepo.GetSexDistribution(ctx, tenantID)
	}()
	go func() {
		defer wg.Done()
		faixaValor, errValor = uc.analyticsRepo.GetDefaultByValueRange(ctx, tenantID)
	}()
	wg.Wait()

	switch {
	case errKPIs != nil:
		return nil, fmt.Errorf("dashboard: kpis de clientes: %w", errKPIs)
	case errIdade != nil:
		return nil, fmt.Errorf("dashboard: faixa etária: %w", errIdade)
	case errSexo != nil:
		return nil, fmt.Errorf("dashboard: sexo: %w", errSexo)
	case errValor != nil:
		return nil, fmt.Errorf("dashboard: faixa de valor: %w", errValor)
	}

	return &dto.DashboardAnaliseClientes{
		DPlusMedio:                 round1(kpis.DPlusMedio),
		BonsPagadores:              kpis.BonsPagadores,
		Reincidentes:               kpis.Reincidentes,
		Inadimplentes:              kpis.Inadimplentes,
		TicketMedio:                kpis.TicketMedio.Round(2),
		IdadeMedia:                 round1(kpis.IdadeMedia),
		DistribuicaoFaixaEtaria:    buildDistribuicao(idades),
		DistribuicaoSexo:           buildDistribuicao(sexos),
		InadimplenciaPorFaixaValor: buildInadimplencia(faixaValor),
		TenantID:                   tenantID,
	}, nil
}

// Base resposta de GET /dashboard/.
func (uc *DashboardUseCase) Base(actor *entity.User) *dto.DashboardBase {
	return &dto.DashboardBase{Message: "Dashboard base", User: *auth.ToUserResponse(actor)}
}

// Operator painel do operador: contratos em aberto e vencidos no escopo.
func (uc *DashboardUseCase) Operator(ctx context.Context, actor *entity.User) (*dto.RoleDashboard, error) {
	rows, err := uc.analyticsRepo.GetStatusDistribution(ctx, access.ResolveScope(actor, nil).Filter())
	if err != nil {
		return nil, fmt.Errorf("dashboard: operador: %w", err)
	}
	counts := map[string]int{}
	for _, r := range rows {
		counts[r.Status] = r.Quantidade
	}
	return &dto.RoleDashboard{
		Dashboard: "operator",
		Data: map[string]any{
			"tasks_pending":       counts[entity.ContratoAtivo] + counts[entity.ContratoAtrasado],
			"tasks_completed":     counts[entity.ContratoPago],
			"contratos_atrasados": counts[entity.ContratoAtrasado],
		},
	}, nil
}

// Manager painel do gerente: clientes da carteira.
func (uc *DashboardUseCase) Manager(ctx context.Context, actor *entity.User) (*dto.RoleDashboard, error) {
	stats, err := uc.analyticsRepo.GetBaseStats(ctx, access.ResolveScope(actor, nil).Filter())
	if err != nil {
		return nil, fmt.Errorf("dashboard: gerente: %w", err)
	}
	return &dto.RoleDashboard{
		Dashboard: "manager",
		Data: map[string]any{
			"total_clients":      stats.TotalClientes,
			"active_clients":     stats.TotalClientes - stats.ClientesComAtraso,
			"clients_in_arrears": stats.ClientesComAtraso,
			"total_contracts":    stats.TotalContratos,
		},
	}, nil
}

// Director painel do diretor: valor da carteira e valor recuperado em todos os tenants.
func (uc *DashboardUseCase) Director(ctx context.Context, actor *entity.User) (*dto.RoleDashboard, error) {
	tenantID := access.ResolveScope(actor, nil).Filter()
	stats, err := uc.analyticsRepo.GetBaseStats(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: diretor: %w", err)
	}
	recovered, err := uc.analyticsRepo.GetRecovered(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: diretor: %w", err)
	}
	rate := 0.0
	if stats.ValorTotal.IsPositive() {
		rate, _ = recovered.Div(stats.ValorTotal).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	}
	return &dto.RoleDashboard{
		Dashboard: "director",
		Data: map[string]any{
			"revenue":       stats.ValorTotal.Round(2),
			"recovered":     recovered.Round(2),
			"recovery_rate": fmt.Sprintf("%.1f%%", rate),
		},
	}, nil
}

func (uc *DashboardUseCase) tenantName(ctx context.Context, id int64) (*string, error) {
	t, err := uc.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("dashboard: tenant: %w", err)
	}
	if t == nil {
		return nil, nil
	}
	return &t.Nome, nil
}

// ── Montagem dos DTOs ─────────────────────────────────────────────────────────

func buildDistribuicaoStatus(rows []repository.StatusCount) []dto.DistribuicaoStatus {
	total := 0
	for _, r := range rows {
		total += r.Quantidade
	}
	out := make([]dto.DistribuicaoStatus, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DistribuicaoStatus{
			Status:     r.Status,
			Quantidade: r.Quantidade,
			Percentual: percent(r.Quantidade, total),
			ValorTotal: r.ValorTotal.Round(2),
		})
	}
	return out
}

// buildFaixas devolve sempre as seis faixas, na ordem de exibição.
func buildFaixas(rows []repository.GroupCount) []dto.FaixaAtraso {
	byLabel := make(map[string]repository.GroupCount, len(rows))
	total := 0
	for _, r := range rows {
		byLabel[r.Label] = r
		total += r.Quantidade
	}
	out := make([]dto.FaixaAtraso, 0, len(entity.FaixasAtraso))
	for _, f := range entity.FaixasAtraso {
		r := byLabel[f]
		out = append(out, dto.FaixaAtraso{
			Faixa:      f,
			Quantidade: r.Quantidade,
			Percentual: percent(r.Quantidade, total),
			ValorTotal: r.ValorTotal.Round(2),
		})
	}
	return out
}

func buildTopDevedores(rows []repository.DevedorRanking) []dto.TopDevedor {
	out := make([]dto.TopDevedor, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopDevedor{
			Nome:           r.Nome,
			CPFMascarado:   entity.MaskCPF(r.CPF),
			TotalContratos: r.TotalContratos,
			ValorPendente:  r.ValorPendente.Round(2),
			MaxAtraso:      r.MaxAtraso,
		})
	}
	return out
}

func buildDistribuicao(rows []repository.GroupCount) []dto.Distribuicao {
	total := 0
	for _, r := range rows {
		total += r.Quantidade
	}
	out := make([]dto.Distribuicao, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.Distribuicao{Categoria: r.Label, Quantidade: r.Quantidade, Percentual: percent(r.Quantidade, total)})
	}
	return out
}

func buildInadimplencia(rows []repository.GroupCount) []dto.InadimplenciaPorFaixa {
	total := 0
	for _, r := range rows {
		total += r.Quantidade
	}
	out := make([]dto.InadimplenciaPorFaixa, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.InadimplenciaPorFaixa{
			FaixaValor: r.Label,
			Quantidade: r.Quantidade,
			ValorTotal: r.ValorTotal.Round(2),
			Percentual: percent(r.Quantidade, total),
		})
	}
	return out
}

// percent devolve part/total em %, com duas casas; zero quando total é zero.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*10000) / 100
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
