package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos repositórios
// ──────────────────────────────────────────────────────────────────────────────

func ptr[T any](v T) *T { return &v }

func diretor() *entity.User { return &entity.User{ID: 1, Role: entity.RoleDiretor, IsActive: true} }

func gerente(tenant int64) *entity.User {
	return &entity.User{ID: 2, Role: entity.RoleGerente, TenantID: ptr(tenant), IsActive: true}
}

func operador(id, tenant int64) *entity.User {
	return &entity.User{ID: id, Role: entity.RoleOperador, TenantID: ptr(tenant), IsActive: true}
}

type fakeSegments struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*entity.Segmento
}

func newFakeSegments() *fakeSegments { return &fakeSegments{byID: map[int64]*entity.Segmento{}} }

func (f *fakeSegments) Create(_ context.Context, s *entity.Segmento) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.byID[s.ID] = &cp
	return nil
}

func (f *fakeSegments) GetByID(_ context.Context, id int64) (*entity.Segmento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSegments) List(_ context.Context, tenantID int64) ([]*entity.Segmento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Segmento
	for _, s := range f.byID {
		if s.TenantID == tenantID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinDaysOverdue < out[j].MinDaysOverdue })
	return out, nil
}

func (f *fakeSegments) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeContratos struct {
	mu      sync.Mutex
	byID    map[int64]*entity.Contrato
	atrasos []repository.ContratoAtraso
	// último intervalo consultado em ListByDaysOverdue
	lastMin, lastMax int
	lastTenant       int64
}

func newFakeContratos() *fakeContratos { return &fakeContratos{byID: map[int64]*entity.Contrato{}} }

func (f *fakeContratos) Create(_ context.Context, c *entity.Contrato) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = int64(len(f.byID) + 1)
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeContratos) Update(_ context.Context, c *entity.Contrato) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeContratos) GetByID(_ context.Context, id int64) (*entity.Contrato, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeContratos) GetByNumero(_ context.Context, tenantID int64, numero string) (*entity.Contrato, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.byID {
		if c.TenantID == tenantID && c.NumeroContrato == numero {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeContratos) ListByDaysOverdue(_ context.Context, tenantID int64, minDays, maxDays int, _ time.Time, _ int) ([]repository.ContratoAtraso, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTenant, f.lastMin, f.lastMax = tenantID, minDays, maxDays
	var out []repository.ContratoAtraso
	for _, a := range f.atrasos {
		if a.DiasAtraso >= minDays && a.DiasAtraso <= maxDays {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeContratos) MarkOverdue(context.Context, time.Time) (int64, error) { return 0, nil }

// ApplyPayment implementa repository.ContratoPagamentos sobre os mesmos contratos.
func (f *fakeContratos) ApplyPayment(_ context.Context, id int64, amount decimal.Decimal, paidAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return errors.New("contrato inexistente")
	}
	c.ValorPago = c.ValorPago.Add(amount)
	if !c.ValorPendente().IsPositive() {
		c.Status = entity.ContratoPago
		c.DataPagamento = &paidAt
	}
	return nil
}

type fakeDisparos struct {
	mu   sync.Mutex
	byID map[string]*entity.Disparo
	// filtros recebidos em List
	lastTenant  *int64
	lastChannel string
}

func newFakeDisparos() *fakeDisparos { return &fakeDisparos{byID: map[string]*entity.Disparo{}} }

func (f *fakeDisparos) Create(_ context.Context, d *entity.Disparo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDisparos) Update(ctx context.Context, d *entity.Disparo) error { return f.Create(ctx, d) }

func (f *fakeDisparos) GetByProviderID(_ context.Context, providerID string) (*entity.Disparo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.byID {
		if d.ProviderID != "" && d.ProviderID == providerID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDisparos) List(_ context.Context, tenantID *int64, channel string, _ int) ([]*entity.Disparo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTenant, f.lastChannel = tenantID, channel
	var out []*entity.Disparo
	for _, d := range f.byID {
		if tenantID != nil && (d.TenantID == nil || *d.TenantID != *tenantID) {
			continue
		}
		if channel != "" && d.Channel != channel {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

type fakePagamentos struct {
	mu       sync.Mutex
	byID     map[string]*entity.Pagamento
	lastUser *int64
}

func newFakePagamentos() *fakePagamentos {
	return &fakePagamentos{byID: map[string]*entity.Pagamento{}}
}

func (f *fakePagamentos) Create(_ context.Context, p *entity.Pagamento) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePagamentos) Update(ctx context.Context, p *entity.Pagamento) error { return f.Create(ctx, p) }

func (f *fakePagamentos) GetByID(_ context.Context, id string) (*entity.Pagamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePagamentos) GetByGatewayRef(_ context.Context, ref string) (*entity.Pagamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.GatewayRef == ref {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePagamentos) List(_ context.Context, tenantID *int64, userID *int64, _ int) ([]*entity.Pagamento, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastUser = userID
	var out []*entity.Pagamento
	for _, p := range f.byID {
		if tenantID != nil && (p.TenantID == nil || *p.TenantID != *tenantID) {
			continue
		}
		if userID != nil && p.UserID != *userID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// fakeTx executa fn sem transação real; erro não desfaz alterações.
type fakeTx struct{ repos repository.TxRepos }

func (f fakeTx) Run(_ context.Context, fn func(repository.TxRepos) error) error { return fn(f.repos) }

type fakeDispatcher struct {
	err   error
	calls int
}

func (f *fakeDispatcher) Send(context.Context, string, string, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "prov-1", nil
}

type fakeGateway struct {
	err     error
	charges []ports.Charge
}

func (f *fakeGateway) CreateCharge(_ context.Context, c ports.Charge) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.charges = append(f.charges, c)
	return "gw-" + c.ID, nil
}

type fakeTenantRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*entity.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo { return &fakeTenantRepo{byID: map[int64]*entity.Tenant{}} }

func (f *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id int64) (*entity.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTenantRepo) GetByCNPJ(_ context.Context, cnpj string) (*entity.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.byID {
		if t.CNPJ == cnpj {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) Update(_ context.Context, t *entity.Tenant) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTenantRepo) List(_ context.Context, onlyActive bool) ([]*entity.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Tenant
	for _, t := range f.byID {
		if onlyActive && !t.Ativo {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
