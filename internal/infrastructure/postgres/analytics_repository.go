package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas somente leitura dos dashboards de carteira e clientes.
// Todas recebem tenant_id como $1; NULL agrega todos os tenants.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constrói o adaptador de analytics.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetKPIs totais da carteira. media_atraso considera só contratos atrasados já vencidos.
func (r *AnalyticsRepo) GetKPIs(ctx context.Context, tenantID *int64, today time.Time) (repository.CarteiraKPIs, error) {
	const query = `
	SELECT
	    COUNT(*)                                                      AS total_contratos,
	    COUNT(DISTINCT cliente_id)                                    AS total_devedores,
	    COALESCE(SUM(valor_original), 0)                              AS valor_total,
	    COALESCE(AVG($2::DATE - data_vencimento)
	        FILTER (WHERE status = 'atrasado' AND data_vencimento < $2::DATE), 0)::FLOAT8 AS media_atraso
	FROM contratos
	WHERE ($1::BIGINT IS NULL OR tenant_id = $1)`

	var k repository.CarteiraKPIs
	err := r.q.QueryRow(ctx, query, nullableID(tenantID), today).
		Scan(&k.TotalContratos, &k.TotalDevedores, &k.ValorTotal, &k.MediaAtraso)
	if err != nil {
		return repository.CarteiraKPIs{}, fmt.Errorf("analytics.GetKPIs: %w", err)
	}
	return k, nil
}

// GetStatusDistribution quantidade e valor original por status.
func (r *AnalyticsRepo) GetStatusDistribution(ctx context.Context, tenantID *int64) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*), COALESCE(SUM(valor_original), 0)
	FROM contratos
	WHERE ($1::BIGINT IS NULL OR tenant_id = $1)
	GROUP BY status
	ORDER BY COUNT(*) DESC, status`

	rows, err := r.q.Query(ctx, query, nullableID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStatusDistribution: %w", err)
	}
	defer rows.Close()

	var results []repository.StatusCount
	for rows.Next() {
		var s repository.StatusCount
		if err := rows.Scan(&s.Status, &s.Quantidade, &s.ValorTotal); err != nil {
			return nil, fmt.Errorf("analytics.GetStatusDistribution scan: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// GetAgingBuckets agrupa os contratos nas faixas D+. Pagos e não vencidos ficam em "Em dia".
func (r *AnalyticsRepo) GetAgingBuckets(ctx context.Context, tenantID *int64, today time.Time) ([]repository.GroupCount, error) {
	const query = `
	SELECT faixa, COUNT(*), COALESCE(SUM(valor_original), 0)
	FROM (
	    SELECT valor_original,
	           CASE
	               WHEN status = 'pago' OR data_vencimento >= $2::DATE THEN 'Em dia'
	               WHEN $2::DATE - data_vencimento <= 30  THEN 'D+1-30'
	               WHEN $2::DATE - data_vencimento <= 60  THEN 'D+31-60'
	               WHEN $2::DATE - data_vencimento <= 90  THEN 'D+61-90'
	               WHEN $2::DATE - data_vencimento <= 180 THEN 'D+91-180'
	               ELSE 'D+180+'
	           END AS faixa
	    FROM contratos
	    WHERE ($1::BIGINT IS NULL OR tenant_id = $1)
	) f
	GROUP BY faixa`

	rows, err := r.q.Query(ctx, query, nullableID(tenantID), today)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetAgingBuckets: %w", err)
	}
	return scanGroups(rows, "analytics.GetAgingBuckets")
}

// GetTopDevedores clientes com maior valor pendente, ignorando contratos pagos ou cancelados.
func (r *AnalyticsRepo) GetTopDevedores(ctx context.Context, tenantID *int64, today time.Time, limit int) ([]repository.DevedorRanking, error) {
	const query = `
	SELECT
	    c.nome,
	    c.cpf,
	    COUNT(ct.id)                                                                     AS total_contratos,
	    SUM(GREATEST(COALESCE(ct.valor_atualizado, ct.valor_original) - ct.valor_pago, 0)) AS valor_pendente,
	    MAX(GREATEST($2::DATE - ct.data_vencimento, 0))                                   AS max_atraso
	FROM contratos ct
	JOIN clientes  c ON c.id = ct.cliente_id
	WHERE ($1::BIGINT IS NULL OR ct.tenant_id = $1)
	  AND ct.status NOT IN ('pago', 'cancelado')
	GROUP BY c.id, c.nome, c.cpf
	ORDER BY valor_pendente DESC, c.nome
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, nullableID(tenantID), today, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopDevedores: %w", err)
	}
	defer rows.Close()

	var results []repository.DevedorRanking
	for rows.Next() {
		var d repository.DevedorRanking
		if err := rows.Scan(&d.Nome, &d.CPF, &d.TotalContratos, &d.ValorPendente, &d.MaxAtraso); err != nil {
			return nil, fmt.Errorf("analytics.GetTopDevedores scan: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// GetClientesKPIs indicadores por cliente: comportamento de pagamento, ticket e idade.
func (r *AnalyticsRepo) GetClientesKPIs(ctx context.Context, tenantID *int64, today time.Time) (repository.ClientesKPIs, error) {
	const query = `
	WITH escopo AS (
	    SELECT * FROM contratos WHERE ($1::BIGINT IS NULL OR tenant_id = $1)
	), por_cliente AS (
	    SELECT cliente_id,
	           COUNT(*) FILTER (WHERE status = 'atrasado') AS atrasados,
	           COUNT(*) FILTER (WHERE status = 'pago')     AS pagos
	    FROM escopo
	    GROUP BY cliente_id
	)
	SELECT
	    COALESCE((SELECT AVG($2::DATE - data_vencimento) FROM escopo
	              WHERE status NOT IN ('pago', 'cancelado') AND data_vencimento < $2::DATE), 0)::FLOAT8,
	    (SELECT COUNT(*) FROM por_cliente WHERE atrasados = 0 AND pagos > 0),
	    (SELECT COUNT(*) FROM por_cliente WHERE atrasados > 1),
	    (SELECT COUNT(*) FROM por_cliente WHERE atrasados > 0),
	    COALESCE((SELECT AVG(valor_original) FROM escopo), 0),
	    COALESCE((SELECT AVG(EXTRACT(YEAR FROM AGE($2::DATE, data_nascimento))) FROM clientes
	              WHERE ($1::BIGINT IS NULL OR tenant_id = $1) AND data_nascimento IS NOT NULL), 0)::FLOAT8`

	var k repository.ClientesKPIs
	err := r.q.QueryRow(ctx, query, nullableID(tenantID), today).Scan(
		&k.DPlusMedio, &k.BonsPagadores, &k.Reincidentes, &k.Inadimplentes, &k.TicketMedio, &k.IdadeMedia,
	)
	if err != nil {
		return repository.ClientesKPIs{}, fmt.Errorf("analytics.GetClientesKPIs: %w", err)
	}
	return k, nil
}

// GetAgeDistribution clientes por faixa etária; sem data de nascimento vai para "Não informado".
func (r *AnalyticsRepo) GetAgeDistribution(ctx context.Context, tenantID *int64, today time.Time) ([]repository.GroupCount, error) {
	const query = `
	SELECT faixa, COUNT(*), 0::NUMERIC
	FROM (
	    SELECT CASE
	               WHEN data_nascimento IS NULL THEN 'Não informado'
	               WHEN EXTRACT(YEAR FROM AGE($2::DATE, data_nascimento)) < 26 THEN '18-25'
	               WHEN EXTRACT(YEAR FROM AGE($2::DATE, data_nascimento)) < 36 THEN '26-35'
	               WHEN EXTRACT(YEAR FROM AGE($2::DATE, data_nascimento)) < 46 THEN '36-45'
	               WHEN EXTRACT(YEAR FROM AGE($2::DATE, data_nascimento)) < 61 THEN '46-60'
	               ELSE '60+'
	           END AS faixa
	    FROM clientes
	    WHERE ($1::BIGINT IS NULL OR tenant_id = $1)
	) f
	GROUP BY faixa
	ORDER BY CASE faixa
	    WHEN '18-25' THEN 1 WHEN '26-35' THEN 2 WHEN '36-45' THEN 3
	    WHEN '46-60' THEN 4 WHEN '60+' THEN 5 ELSE 6 END`

	rows, err := r.q.Query(ctx, query, nullableID(tenantID), today)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetAgeDistribution: %w", err)
	}
	return scanGroups(rows, "analytics.GetAgeDistribution")
}

// GetSexDistribution clientes por sexo.
func (r *AnalyticsRepo) GetSexDistribution(ctx context.Context, tenantID *int64) ([]repository.GroupCount, error) {
	const query = `
	SELECT CASE sexo
	           WHEN 'M' THEN 'Masculino'
	           WHEN 'F' THEN 'Feminino'
	           WHEN 'O' THEN 'Outro'
	           ELSE 'Não informado'
	       END AS categoria,
	       COUNT(*), 0::NUMERIC
	FROM clientes
	WHERE ($1::BIGINT IS NULL OR tenant_id = $1)
	GROUP BY categoria
	ORDER BY COUNT(*) DESC, categoria`

	rows, err := r.q.Query(ctx, query, nullableID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSexDistribution: %w", err)
	}
	return scanGroups(rows, "analytics.GetSexDistribution")
}

// GetDefaultByValueRange contratos atrasados por faixa de valor original, com o valor pendente.
func (r *AnalyticsRepo) GetDefaultByValueRange(ctx context.Context, tenantID *int64) ([]repository.GroupCount, error) {
	const query = `
	SELECT faixa, COUNT(*), COALESCE(SUM(pendente), 0)
	FROM (
	    SELECT GREATEST(COALESCE(valor_atualizado, valor_original) - valor_pago, 0) AS pendente,
	           CASE
	               WHEN valor_original < 1000  THEN 'R$ 0-1k'
	               WHEN valor_original < 5000  THEN 'R$ 1k-5k'
	               WHEN valor_original < 10000 THEN 'R$ 5k-10k'
	               ELSE 'R$ 10k+'
	           END AS faixa
	    FROM contratos
	    WHERE ($1::BIGINT IS NULL OR tenant_id = $1) AND status = 'atrasado'
	) f
	GROUP BY faixa
	ORDER BY CASE faixa
	    WHEN 'R$ 0-1k' THEN 1 WHEN 'R$ 1k-5k' THEN 2 WHEN 'R$ 5k-10k' THEN 3 ELSE 4 END`

	rows, err := r.q.Query(ctx, query, nullableID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDefaultByValueRange: %w", err)
	}
	return scanGroups(rows, "analytics.GetDefaultByValueRange")
}

// GetBaseStats contadores da tela de base.
func (r *AnalyticsRepo) GetBaseStats(ctx context.Context, tenantID *int64) (repository.BaseStats, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM clientes  WHERE ($1::BIGINT IS NULL OR tenant_id = $1)),
	    (SELECT COUNT(*) FROM contratos WHERE ($1::BIGINT IS NULL OR tenant_id = $1)),
	    (SELECT COALESCE(SUM(valor_original), 0) FROM contratos WHERE ($1::BIGINT IS NULL OR tenant_id = $1)),
	    (SELECT COUNT(DISTINCT cliente_id) FROM contratos
	      WHERE ($1::BIGINT IS NULL OR tenant_id = $1) AND status = 'atrasado')`

	var s repository.BaseStats
	err := r.q.QueryRow(ctx, query, nullableID(tenantID)).
		Scan(&s.TotalClientes, &s.TotalContratos, &s.ValorTotal, &s.ClientesComAtraso)
	if err != nil {
		return repository.BaseStats{}, fmt.Errorf("analytics.GetBaseStats: %w", err)
	}
	return s, nil
}

// GetRecovered soma o valor já pago nos contratos do escopo.
func (r *AnalyticsRepo) GetRecovered(ctx context.Context, tenantID *int64) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(valor_pago), 0) FROM contratos WHERE ($1::BIGINT IS NULL OR tenant_id = $1)`,
		nullableID(tenantID),
	).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.GetRecovered: %w", err)
	}
	return v, nil
}

func scanGroups(rows pgx.Rows, op string) ([]repository.GroupCount, error) {
	defer rows.Close()
	var results []repository.GroupCount
	for rows.Next() {
		var g repository.GroupCount
		if err := rows.Scan(&g.Label, &g.Quantidade, &g.ValorTotal); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return results, nil
}
