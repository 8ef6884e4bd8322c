// seed popula o banco com tenants, usuários e uma carteira de exemplo.
// Pode rodar várias vezes: o que já existe é mantido.
//
// Uso:
//
//	go run ./cmd/seed                              # tenants, usuários e 50 clientes por tenant
//	go run ./cmd/seed --clientes 0                 # sem carteira de exemplo
//	go run ./cmd/seed --csv base.csv --tenant 2    # importa uma planilha no tenant 2
//	go run ./cmd/seed --migrate-down 1             # desfaz a última migração e sai
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akamensky/argparse"
	"github.com/shopspring/decimal"

	"github.com/cordobafintech/cobranca-api/internal/application/auth"
	"github.com/cordobafintech/cobranca-api/internal/application/dto"
	"github.com/cordobafintech/cobranca-api/internal/application/importacao"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/domain/repository"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/cache"
	infrapdf "github.com/cordobafintech/cobranca-api/internal/infrastructure/pdf"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/postgres"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/spreadsheet"
	"github.com/cordobafintech/cobranca-api/pkg/config"
	"github.com/cordobafintech/cobranca-api/pkg/documento"
	"github.com/cordobafintech/cobranca-api/pkg/logger"
)

var seedTenants = []entity.Tenant{
	{Nome: "Empresa Alpha Cobrança", CNPJ: "11.111.111/0001-11"},
	{Nome: "Beta Recuperadora", CNPJ: "22.222.222/0001-22"},
	{Nome: "Gamma Assessoria", CNPJ: "33.333.333/0001-33"},
}

var (
	nomesMasculinos = []string{"João", "Pedro", "Carlos", "José", "Antonio", "Paulo", "Lucas", "Marcos"}
	nomesFemininos  = []string{"Maria", "Ana", "Juliana", "Fernanda", "Patricia", "Sandra", "Lucia", "Carla"}
	sobrenomes      = []string{"Silva", "Santos", "Oliveira", "Souza", "Costa", "Pereira", "Rodrigues", "Almeida"}
)

type seedArgs struct {
	Clientes    *int
	CSV         *string
	Tenant      *int
	MigrateDown *int
}

func parseArgs() seedArgs {
	parser := argparse.NewParser("seed", "Popula o banco da Córdoba Fintech com dados de teste")
	a := seedArgs{
		Clientes: parser.Int("c", "clientes", &argparse.Options{
			Default: 50,
			Help:    "Clientes de exemplo por tenant (0 desliga)",
		}),
		CSV: parser.String("f", "csv", &argparse.Options{
			Help: "Planilha (.csv ou .xlsx) a importar",
		}),
		Tenant: parser.Int("t", "tenant", &argparse.Options{
			Help: "Tenant que recebe a planilha de --csv",
		}),
		MigrateDown: parser.Int("d", "migrate-down", &argparse.Options{
			Help: "Desfaz N migrações e sai",
		}),
	}
	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}
	return a
}

func main() {
	args := parseArgs()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "carregar configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: "development", Level: "info", App: "seed"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	if *args.MigrateDown > 0 {
		if err := postgres.MigrateDown(pool, *args.MigrateDown); err != nil {
			log.Fatal().Err(err).Msg("desfazer migrações")
		}
		log.Info().Int("passos", *args.MigrateDown).Msg("migrações desfeitas")
		return
	}
	if err := postgres.Migrate(pool, log.Service("migrate")); err != nil {
		log.Fatal().Err(err).Msg("migrações")
	}

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{Secret: cfg.JWT.Secret})

	tenants, err := seedTenantsIfMissing(ctx, tenantRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("tenants")
	}
	for _, t := range tenants {
		log.Info().Int64("id", t.ID).Str("nome", t.Nome).Msg("tenant")
	}

	diretor, err := seedUsers(ctx, authUC, userRepo, tenants)
	if err != nil {
		log.Fatal().Err(err).Msg("usuários")
	}

	if *args.Clientes > 0 {
		for _, t := range tenants {
			n, err := seedCarteira(ctx, clienteRepo, txRunner, t.ID, *args.Clientes)
			if err != nil {
				log.Fatal().Err(err).Str("tenant", t.Nome).Msg("carteira")
			}
			if n == 0 {
				log.Info().Str("tenant", t.Nome).Msg("carteira já existe")
				continue
			}
			log.Info().Str("tenant", t.Nome).Int("contratos", n).Int("clientes", *args.Clientes).Msg("carteira criada")
		}
	}

	if *args.CSV != "" {
		if *args.Tenant <= 0 {
			log.Fatal().Msg("--csv exige --tenant")
		}
		uc := importacao.New(importacao.Deps{
			Reader:      spreadsheet.NewReader(),
			Writer:      spreadsheet.NewWriter(),
			Previews:    cache.NewMemoryPreviewStore(),
			Reports:     infrapdf.NewImportReportGenerator(),
			Clientes:    clienteRepo,
			Importacoes: postgres.NewImportacaoRepository(pool),
			Tenants:     tenantRepo,
			Tx:          txRunner,
		}, importacao.Config{MaxBytes: cfg.Upload.MaxBytes()}, log.Service("importacao"))

		res, err := importCSV(ctx, uc, diretor, int64(*args.Tenant), *args.CSV)
		if err != nil {
			log.Fatal().Err(err).Str("arquivo", *args.CSV).Msg("importação")
		}
		log.Info().
			Str("status", res.Status).
			Int("linhas", res.TotalLinhas).
			Int("clientes_criados", res.ClientesCriados).
			Int("contratos_criados", res.ContratosCriados).
			Int("erros", res.TotalErros).
			Msg("planilha importada")
		for _, e := range res.Erros {
			log.Warn().Msg(e)
		}
	}

	log.Info().Msg("seed concluído")
	fmt.Println("Credenciais de acesso:")
	fmt.Println("  Diretor:    diretor@cordoba.com / dir123")
	fmt.Println("  Gerentes:   gerente1@empresa.com / ger123")
	fmt.Println("  Operadores: operador1@empresa.com / op123")
}

func seedTenantsIfMissing(ctx context.Context, repo repository.TenantRepository) ([]*entity.Tenant, error) {
	out := make([]*entity.Tenant, 0, len(seedTenants))
	for _, st := range seedTenants {
		t, err := repo.GetByCNPJ(ctx, st.CNPJ)
		if err != nil {
			return nil, err
		}
		if t == nil {
			t = &entity.Tenant{Nome: st.Nome, CNPJ: st.CNPJ, Ativo: true, CreatedAt: time.Now()}
			if err := repo.Create(ctx, t); err != nil {
				return nil, err
			}
		}
		out = append(out, t)
	}
	return out, nil
}

// seedUsers cria o diretor global e um gerente e um operador por tenant.
// Devolve o diretor, usado como autor das importações.
func seedUsers(ctx context.Context, uc *auth.AuthUseCase, users repository.UserRepository, tenants []*entity.Tenant) (*entity.User, error) {
	root := &entity.User{Role: entity.RoleDiretor}
	ensure := func(name, email, password, role string, tenantID *int64) error {
		u, err := users.GetByEmail(ctx, email)
		if err != nil || u != nil {
			return err
		}
		_, err = uc.Register(ctx, root, dto.CreateUserRequest{
			Name: name, Email: email, Password: password, Role: role, TenantID: tenantID,
		})
		return err
	}

	if err := ensure("Carlos Diretor", "diretor@cordoba.com", "dir123", entity.RoleDiretor, nil); err != nil {
		return nil, err
	}
	for i, t := range tenants {
		prefix := strings.Fields(t.Nome)[0]
		domain := strings.ToLower(prefix) + ".com"
		id := t.ID
		if err := ensure("Gerente "+prefix, fmt.Sprintf("gerente%d@%s", i+1, domain), "ger123", entity.RoleGerente, &id); err != nil {
			return nil, err
		}
		if err := ensure("Operador "+prefix, fmt.Sprintf("operador%d@%s", i+1, domain), "op123", entity.RoleOperador, &id); err != nil {
			return nil, err
		}
	}
	return users.GetByEmail(ctx, "diretor@cordoba.com")
}

// seedCarteira cria n clientes com 1 a 3 contratos cada, numa transação.
// Tenant que já tem clientes é ignorado; devolve o total de contratos criados.
func seedCarteira(ctx context.Context, clientes repository.ClienteRepository, tx repository.TxRunner, tenantID int64, n int) (int, error) {
	_, total, err := clientes.ListResumo(ctx, &tenantID, "", 1, 0)
	if err != nil || total > 0 {
		return 0, err
	}

	hoje := time.Now().Truncate(24 * time.Hour)
	contratos := 0
	err = tx.Run(ctx, func(r repository.TxRepos) error {
		for j := 0; j < n; j++ {
			c := randomCliente(tenantID, j, hoje)
			if err := r.Clientes.Create(ctx, c); err != nil {
				return err
			}
			porCliente := 1 + rand.IntN(3)
			for k := 1; k <= porCliente; k++ {
				if err := r.Contratos.Create(ctx, randomContrato(tenantID, c.ID, k, hoje)); err != nil {
					return err
				}
				contratos++
			}
		}
		return nil
	})
	return contratos, err
}

func randomCliente(tenantID int64, j int, hoje time.Time) *entity.Cliente {
	masculino := rand.IntN(2) == 0
	nome, sexo := pick(nomesFemininos), entity.SexoFeminino
	if masculino {
		nome, sexo = pick(nomesMasculinos), entity.SexoMasculino
	}
	sobrenome := pick(sobrenomes)

	cpf, _ := documento.CompleteCPF(fmt.Sprintf("%09d", 1+rand.IntN(999_999_998)))
	nascimento := hoje.AddDate(-(25 + rand.IntN(41)), 0, 0)

	return &entity.Cliente{
		TenantID:       tenantID,
		Nome:           nome + " " + sobrenome,
		CPF:            cpf,
		DataNascimento: &nascimento,
		Sexo:           sexo,
		Telefone:       fmt.Sprintf("(%d) 9%04d-%04d", 11+rand.IntN(89), 1000+rand.IntN(9000), 1000+rand.IntN(9000)),
		Email:          fmt.Sprintf("%s.%s%d@email.com", strings.ToLower(nome), strings.ToLower(sobrenome), j),
		CreatedAt:      time.Now(),
	}
}

// randomContrato distribui status pela data: a vencer fica ativo; vencido vira
// pago (30%), negociado com 30% pago, ou atrasado.
func randomContrato(tenantID, clienteID int64, k int, hoje time.Time) *entity.Contrato {
	valor := decimal.NewFromInt(int64(500 + rand.IntN(49501)))
	dataContrato := hoje.AddDate(0, 0, -(30 + rand.IntN(1066)))
	venc := dataContrato.AddDate(0, 0, 30+rand.IntN(336))

	status, pago := entity.ContratoAtrasado, decimal.Zero
	switch {
	case venc.After(hoje):
		status = entity.ContratoAtivo
	case rand.Float64() > 0.7:
		status, pago = entity.ContratoPago, valor
	case rand.Float64() > 0.8:
		status, pago = entity.ContratoNegociado, valor.Mul(decimal.NewFromFloat(0.3)).Round(2)
	}

	return &entity.Contrato{
		NumeroContrato: fmt.Sprintf("CTR-%d-%d-%d", tenantID, clienteID, k),
		TenantID:       tenantID,
		ClienteID:      clienteID,
		ValorOriginal:  valor,
		ValorPago:      pago,
		DataContrato:   &dataContrato,
		DataVencimento: venc,
		Status:         status,
		CreatedAt:      time.Now(),
	}
}

func pick(s []string) string { return s[rand.IntN(len(s))] }

func importCSV(ctx context.Context, uc *importacao.UseCase, actor *entity.User, tenantID int64, path string) (*dto.ResultadoImportacao, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return uc.Direct(ctx, actor, &tenantID, entity.ImportIncremental, false, importacao.Upload{
		Filename: filepath.Base(path),
		Data:     data,
	})
}
