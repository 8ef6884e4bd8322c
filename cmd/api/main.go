package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	appanalytics "github.com/cordobafintech/cobranca-api/internal/application/analytics"
	"github.com/cordobafintech/cobranca-api/internal/application/auth"
	"github.com/cordobafintech/cobranca-api/internal/application/importacao"
	"github.com/cordobafintech/cobranca-api/internal/application/ports"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/cache"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/jobs"
	infrapdf "github.com/cordobafintech/cobranca-api/internal/infrastructure/pdf"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/postgres"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/provider"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/spreadsheet"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/storage"
	httpRouter "github.com/cordobafintech/cobranca-api/internal/interfaces/http"
	"github.com/cordobafintech/cobranca-api/pkg/config"
	"github.com/cordobafintech/cobranca-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		App:     cfg.App.Name,
		Version: cfg.App.Version,
	})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool, log.Service("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migrações")
		}
	}

	// Repositórios
	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	contratoRepo := postgres.NewContratoRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	importacaoRepo := postgres.NewImportacaoRepository(pool)
	arquivoRepo := postgres.NewArquivoRepository(pool)
	segmentoRepo := postgres.NewSegmentoRepository(pool)
	disparoRepo := postgres.NewDisparoRepository(pool)
	pagamentoRepo := postgres.NewPagamentoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Previews: Redis quando configurado, senão memória do processo.
	var previews ports.PreviewStore
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexão com Redis")
		}
		defer rdb.Close()
		previews = cache.NewRedisPreviewStore(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR vazio: previews ficam na memória do processo")
		previews = cache.NewMemoryPreviewStore()
	}

	// Arquivos: MinIO/S3 quando configurado, senão disco local.
	var objects ports.ObjectStore
	if cfg.Storage.Endpoint != "" {
		ms, err := storage.NewMinioStore(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("cliente de armazenamento")
		}
		if err := ms.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("bucket de armazenamento")
		}
		objects = ms
	} else {
		ds, err := storage.NewDiskStore(cfg.Upload.Dir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Upload.Dir).Msg("diretório de uploads")
		}
		objects = ds
	}

	// Casos de uso
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	importUC := importacao.New(importacao.Deps{
		Reader:      spreadsheet.NewReader(),
		Writer:      spreadsheet.NewWriter(),
		Previews:    previews,
		Store:       objects,
		Reports:     infrapdf.NewImportReportGenerator(),
		Clientes:    clienteRepo,
		Importacoes: importacaoRepo,
		Tenants:     tenantRepo,
		Tx:          txRunner,
	}, importacao.Config{
		MaxBytes:       cfg.Upload.MaxBytes(),
		PreviewTTL:     time.Duration(cfg.Upload.PreviewTTLMinutes) * time.Minute,
		MaxPreviewRows: cfg.Upload.MaxPreviewRows,
	}, log.Service("importacao"))

	channels := provider.NewChannelClient(cfg.Channels, log.Service("channels"))
	gateway := provider.NewGatewayClient(cfg.Payment, log.Service("gateway"))
	if cfg.Channels.WebhookSecret == "" || cfg.Payment.WebhookSecret == "" {
		log.Warn().Msg("CHANNEL_WEBHOOK_SECRET ou PAYMENT_WEBHOOK_SECRET vazio: o webhook correspondente recusará todas as chamadas")
	}

	docsPath := ""
	if cfg.App.EnableDocs {
		docsPath = "/docs"
	}

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name: cfg.App.Name,
		// Folga para os campos do multipart além do arquivo.
		BodyLimitBytes: int(cfg.Upload.MaxBytes()) + 1024*1024,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		RateLimit:      rateLimit(cfg.RateLimit),
	}, log.Service("http"))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.App.EnableDocs {
		if _, err := os.Stat(swaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: swaggerFile,
				Path:     "docs",
				Title:    cfg.App.Name,
			}))
		} else {
			log.Warn().Str("file", swaggerFile).Msg("documentação desligada: arquivo não encontrado")
			docsPath = ""
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		UserUC:          usecase.NewUserUseCase(userRepo),
		TenantUC:        usecase.NewTenantUseCase(tenantRepo),
		DashboardUC:     appanalytics.NewDashboardUseCase(analyticsRepo, tenantRepo),
		ImportUC:        importUC,
		CarteiraUC:      usecase.NewCarteiraUseCase(clienteRepo, analyticsRepo, importacaoRepo),
		ArquivoUC:       usecase.NewArquivoUseCase(arquivoRepo, objects, cfg.Upload.MaxBytes()),
		SegmentUC:       usecase.NewSegmentUseCase(segmentoRepo, contratoRepo),
		CommunicationUC: usecase.NewCommunicationUseCase(disparoRepo, channels, log.Service("communication")),
		PaymentUC:       usecase.NewPaymentUseCase(pagamentoRepo, contratoRepo, txRunner, gateway, log.Service("payments")),
		Platform:        httpRouter.NewPlatformHandler(cfg.App.Name, cfg.App.Version, docsPath),

		ChannelWebhookSecret: cfg.Channels.WebhookSecret,
		PaymentWebhookSecret: cfg.Payment.WebhookSecret,
	})

	scheduler := jobs.NewScheduler(contratoRepo, cfg.Jobs.OverdueCron, log.Service("jobs"))
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("agendador")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}

func rateLimit(cfg config.RateLimitConfig) int {
	if !cfg.Enabled {
		return 0
	}
	return cfg.PerMinute
}
