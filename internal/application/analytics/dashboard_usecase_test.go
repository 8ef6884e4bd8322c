package analytics

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cordobafintech/cobranca-api/internal/domain"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeAnalytics devolve números fixos e registra os filtros de tenant recebidos.
type fakeAnalytics struct {
	mu      sync.Mutex
	tenants []*int64
	failKPI bool

	// GetKPIs espera kpiDelay e registra o pico de chamadas simultâneas.
	kpiDelay    time.Duration
	emAndamento atomic.Int32
	pico        atomic.Int32
}

func (f *fakeAnalytics) record(t *int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenants = append(f.tenants, t)
}

func (f *fakeAnalytics) GetKPIs(_ context.Context, t *int64, _ time.Time) (repository.CarteiraKPIs, error) {
	f.record(t)
	if f.kpiDelay > 0 {
		n := f.emAndamento.Add(1)
		for {
			p := f.pico.Load()
			if n <= p || f.pico.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(f.kpiDelay)
		f.emAndamento.Add(-1)
	}
	if f.failKPI {
		return repository.CarteiraKPIs{}, errors.New("pgx: conn closed")
	}
	return repository.CarteiraKPIs{TotalContratos: 4, TotalDevedores: 3, ValorTotal: decimal.RequireFromString("1000.456"), MediaAtraso: 42.26}, nil
}

func (f *fakeAnalytics) GetStatusDistribution(_ context.Context, t *int64) ([]repository.StatusCount, error) {
	f.record(t)
	return []repository.StatusCount{
		{Status: entity.ContratoAtivo, Quantidade: 1, ValorTotal: decimal.NewFromInt(100)},
		{Status: entity.ContratoPago, Quantidade: 1, ValorTotal: decimal.NewFromInt(200)},
		{Status: entity.ContratoAtrasado, Quantidade: 2, ValorTotal: decimal.NewFromInt(700)},
	}, nil
}

func (f *fakeAnalytics) GetAgingBuckets(context.Context, *int64, time.Time) ([]repository.GroupCount, error) {
	return []repository.GroupCount{
		{Label: entity.FaixaEmDia, Quantidade: 2, ValorTotal: decimal.NewFromInt(300)},
		{Label: entity.FaixaD31a60, Quantidade: 1, ValorTotal: decimal.NewFromInt(400)},
		{Label: entity.FaixaD180Mais, Quantidade: 1, ValorTotal: decimal.NewFromInt(300)},
	}, nil
}

func (f *fakeAnalytics) GetTopDevedores(context.Context, *int64, time.Time, int) ([]repository.DevedorRanking, error) {
	return []repository.DevedorRanking{{Nome: "João", CPF: "123.456.789-01", TotalContratos: 2, ValorPendente: decimal.NewFromInt(700), MaxAtraso: 200}}, nil
}

func (f *fakeAnalytics) GetClientesKPIs(context.Context, *int64, time.Time) (repository.ClientesKPIs, error) {
	return repository.ClientesKPIs{DPlusMedio: 12.34, BonsPagadores: 1, Reincidentes: 1, Inadimplentes: 2, TicketMedio: decimal.RequireFromString("333.333"), IdadeMedia: 40.56}, nil
}

func (f *fakeAnalytics) GetAgeDistribution(context.Context, *int64, time.Time) ([]repository.GroupCount, error) {
	return []repository.GroupCount{{Label: "18-25", Quantidade: 1}, {Label: "26-35", Quantidade: 3}}, nil
}

func (f *fakeAnalytics) GetSexDistribution(context.Context, *int64) ([]repository.GroupCount, error) {
	return []repository.GroupCount{{Label: "M", Quantidade: 2}, {Label: "F", Quantidade: 2}}, nil
}

func (f *fakeAnalytics) GetDefaultByValueRange(context.Context, *int64) ([]repository.GroupCount, error) {
	return []repository.GroupCount{{Label: "Até R$ 500", Quantidade: 1, ValorTotal: decimal.NewFromInt(300)}}, nil
}

func (f *fakeAnalytics) GetBaseStats(_ context.Context, t *int64) (repository.BaseStats, error) {
	f.record(t)
	return repository.BaseStats{TotalClientes: 10, TotalContratos: 12, ValorTotal: decimal.NewFromInt(2000), ClientesComAtraso: 4}, nil
}

func (f *fakeAnalytics) GetRecovered(context.Context, *int64) (decimal.Decimal, error) {
	return decimal.NewFromInt(500), nil
}

type fakeTenants struct{ list []*entity.Tenant }

func (f fakeTenants) Create(context.Context, *entity.Tenant) error { return nil }
func (f fakeTenants) GetByID(_ context.Context, id int64) (*entity.Tenant, error) {
	for _, t := range f.list {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}
func (f fakeTenants) GetByCNPJ(context.Context, string) (*entity.Tenant, error) { return nil, nil }
func (f fakeTenants) Update(context.Context, *entity.Tenant) error              { return nil }
func (f fakeTenants) List(context.Context, bool) ([]*entity.Tenant, error)      { return f.list, nil }

func ptr[T any](v T) *T { return &v }

func newDashboard() (*DashboardUseCase, *fakeAnalytics) {
	fa := &fakeAnalytics{}
	tenants := fakeTenants{list: []*entity.Tenant{{ID: 1, Nome: "Alpha", Ativo: true}, {ID: 2, Nome: "Beta", Ativo: true}}}
	return NewDashboardUseCase(fa, tenants), fa
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes
// ──────────────────────────────────────────────────────────────────────────────

func TestPrincipal_Gerente(t *testing.T) {
	uc, fa := newDashboard()
	user := &entity.User{ID: 2, Role: entity.RoleGerente, TenantID: ptr(int64(1))}

	out, err := uc.Principal(context.Background(), user, ptr(int64(2)))
	require.NoError(t, err)

	for _, tenant := range fa.tenants {
		require.NotNil(t, tenant)
		assert.Equal(t, int64(1), *tenant, "gerente não escolhe tenant")
	}
	assert.Equal(t, 4, out.TotalContratos)
	assert.Equal(t, "1000.46", out.ValorTotal.String())
	assert.Equal(t, out.ValorTotal, out.ValorTotalCarteira)
	assert.Equal(t, 42.3, out.MediaAtraso)
	assert.Equal(t, 1, out.ContratosAtivos)
	assert.Equal(t, 1, out.Quitados)
	assert.Equal(t, 2, out.Atrasados)
	require.NotNil(t, out.TenantNome)
	assert.Equal(t, "Alpha", *out.TenantNome)

	require.Len(t, out.DistribuicaoStatus, 3)
	assert.Equal(t, 50.0, out.DistribuicaoStatus[2].Percentual)

	require.Len(t, out.FaixasAtraso, 6)
	assert.Equal(t, entity.FaixaEmDia, out.FaixasAtraso[0].Faixa)
	assert.Equal(t, 50.0, out.FaixasAtraso[0].Percentual)
	assert.Equal(t, 0, out.FaixasAtraso[1].Quantidade)
	assert.Equal(t, 25.0, out.FaixasAtraso[5].Percentual)

	require.Len(t, out.TopDevedores, 1)
	assert.Equal(t, "***.***.*789-01", out.TopDevedores[0].CPFMascarado)
}

func TestPrincipal_DiretorTodosOsTenants(t *testing.T) {
	uc, fa := newDashboard()
	out, err := uc.Principal(context.Background(), &entity.User{ID: 1, Role: entity.RoleDiretor}, nil)
	require.NoError(t, err)
	assert.Nil(t, out.TenantID)
	assert.Nil(t, out.TenantNome)
	for _, tenant := range fa.tenants {
		assert.Nil(t, tenant)
	}
}

func TestPrincipal_SemTenantNaoVeNada(t *testing.T) {
	uc, fa := newDashboard()
	_, err := uc.Principal(context.Background(), &entity.User{ID: 9, Role: entity.RoleOperador}, nil)
	require.NoError(t, err)
	for _, tenant := range fa.tenants {
		require.NotNil(t, tenant)
		assert.Equal(t, int64(-1), *tenant)
	}
}

func TestPrincipal_ErroDoRepositorio(t *testing.T) {
	uc, fa := newDashboard()
	fa.failKPI = true
	_, err := uc.Principal(context.Background(), &entity.User{ID: 1, Role: entity.RoleDiretor}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard: kpis")
}

func TestConsolidado(t *testing.T) {
	uc, _ := newDashboard()

	_, err := uc.Consolidado(context.Background(), &entity.User{ID: 2, Role: entity.RoleGerente, TenantID: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrRoleDenied)

	out, err := uc.Consolidado(context.Background(), &entity.User{ID: 1, Role: entity.RoleDiretor})
	require.NoError(t, err)
	assert.Nil(t, out.TotalGeral.TenantID)
	require.Len(t, out.PorTenant, 2)
	assert.Equal(t, "Alpha", *out.PorTenant[0].TenantNome)
	assert.Equal(t, "Beta", *out.PorTenant[1].TenantNome)
}

func TestConsolidado_ParalelismoLimitado(t *testing.T) {
	fa := &fakeAnalytics{kpiDelay: 5 * time.Millisecond}
	var list []*entity.Tenant
	for i := int64(1); i <= 40; i++ {
		list = append(list, &entity.Tenant{ID: i, Nome: "T", Ativo: true})
	}
	uc := NewDashboardUseCase(fa, fakeTenants{list: list})

	out, err := uc.Consolidado(context.Background(), &entity.User{ID: 1, Role: entity.RoleDiretor})
	require.NoError(t, err)
	require.Len(t, out.PorTenant, 40)
	assert.Equal(t, int64(40), *out.PorTenant[39].TenantID)
	assert.LessOrEqual(t, fa.pico.Load(), int32(consolidadoParalelismo))
	assert.Positive(t, fa.pico.Load())
}

func TestConsolidado_ErroInterrompe(t *testing.T) {
	uc, fa := newDashboard()
	fa.failKPI = true

	_, err := uc.Consolidado(context.Background(), &entity.User{ID: 1, Role: entity.RoleDiretor})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard: kpis")
}

func TestAnaliseClientes(t *testing.T) {
	uc, _ := newDashboard()
	out, err := uc.AnaliseClientes(context.Background(), &entity.User{ID: 1, Role: entity.RoleDiretor}, ptr(int64(2)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), *out.TenantID)
	assert.Equal(t, 12.3, out.DPlusMedio)
	assert.Equal(t, "333.33", out.TicketMedio.String())
	assert.Equal(t, 40.6, out.IdadeMedia)
	require.Len(t, out.DistribuicaoFaixaEtaria, 2)
	assert.Equal(t, 75.0, out.DistribuicaoFaixaEtaria[1].Percentual)
	assert.Equal(t, 100.0, out.InadimplenciaPorFaixaValor[0].Percentual)
}

func TestRoleDashboards(t *testing.T) {
	uc, _ := newDashboard()
	ctx := context.Background()
	dir := &entity.User{ID: 1, Role: entity.RoleDiretor}

	op, err := uc.Operator(ctx, &entity.User{ID: 3, Role: entity.RoleOperador, TenantID: ptr(int64(1))})
	require.NoError(t, err)
	assert.Equal(t, "operator", op.Dashboard)
	assert.Equal(t, 3, op.Data["tasks_pending"])
	assert.Equal(t, 1, op.Data["tasks_completed"])

	mg, err := uc.Manager(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 10, mg.Data["total_clients"])
	assert.Equal(t, 6, mg.Data["active_clients"])

	dr, err := uc.Director(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "25.0%", dr.Data["recovery_rate"])

	base := uc.Base(dir)
	assert.Equal(t, "Dashboard base", base.Message)
	assert.Equal(t, int64(1), base.User.ID)
}
