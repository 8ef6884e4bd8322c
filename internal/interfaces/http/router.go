package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/cordobafintech/cobranca-api/internal/application/analytics"
	"github.com/cordobafintech/cobranca-api/internal/application/auth"
	"github.com/cordobafintech/cobranca-api/internal/application/importacao"
	"github.com/cordobafintech/cobranca-api/internal/application/usecase"
	"github.com/cordobafintech/cobranca-api/internal/domain/entity"
	"github.com/cordobafintech/cobranca-api/internal/infrastructure/metrics"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	TenantUC        *usecase.TenantUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ImportUC        *importacao.UseCase
	CarteiraUC      *usecase.CarteiraUseCase
	ArquivoUC       *usecase.ArquivoUseCase
	SegmentUC       *usecase.SegmentUseCase
	CommunicationUC *usecase.CommunicationUseCase
	PaymentUC       *usecase.PaymentUseCase
	Platform        *PlatformHandler

	// Segredos exigidos nos webhooks de provedor e gateway.
	ChannelWebhookSecret string
	PaymentWebhookSecret string
}

// Router registra as rotas da API.
// Rotas públicas são registradas antes dos grupos protegidos do mesmo prefixo.
func Router(app *fiber.App, deps RouterDeps) {
	authed := AuthMiddleware(deps.AuthUC)
	diretor := RequireRole(entity.RoleDiretor)

	// Plataforma (público)
	app.Get("/", deps.Platform.Root)
	app.Get("/health", deps.Platform.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/auth/login", authHandler.Login)
	authGroup := app.Group("/auth", authed)
	authGroup.Get("/me", authHandler.Me)
	authGroup.Get("/me/access-status", authHandler.AccessStatus)

	// Users: cadastro público (diretor logado pode definir perfil e tenant)
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	app.Post("/users", OptionalAuth(deps.AuthUC), userHandler.Create)
	app.Get("/users", authed, userHandler.List)

	// Tenants
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants := app.Group("/tenants", authed)
	tenants.Get("/", diretor, tenantHandler.List)
	tenants.Post("/", diretor, tenantHandler.Create)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Patch("/:id", diretor, tenantHandler.Update)

	// Dashboards
	dashHandler := NewDashboardHandler(deps.DashboardUC)
	dash := app.Group("/dashboard", authed)
	dash.Get("/", dashHandler.Base)
	dash.Get("/tenants", tenantHandler.Visible)
	dash.Get("/principal", dashHandler.Principal)
	dash.Get("/principal/consolidado", diretor, dashHandler.Consolidado)
	dash.Get("/analise-clientes", dashHandler.AnaliseClientes)
	dash.Get("/operator", dashHandler.Operator)
	dash.Get("/manager", RequireRole(entity.RoleGerente, entity.RoleDiretor), dashHandler.Manager)
	dash.Get("/director", diretor, dashHandler.Director)

	// Base de devedores
	baseHandler := NewBaseHandler(deps.ImportUC, deps.CarteiraUC, deps.ArquivoUC)
	base := app.Group("/base", authed)
	base.Get("/campos", baseHandler.Campos)
	base.Get("/template", baseHandler.Template)
	base.Post("/upload/preview", baseHandler.Preview)
	base.Post("/upload/confirmar/:preview_id", baseHandler.Confirm)
	base.Post("/upload/excel", baseHandler.Direct)
	base.Post("/upload", baseHandler.Upload)
	base.Get("/files", baseHandler.Files)
	base.Get("/download/:file_id", baseHandler.Download)
	base.Get("/logs", baseHandler.Logs)
	base.Get("/logs/:id", baseHandler.Log)
	base.Get("/logs/:id/relatorio", baseHandler.Report)
	base.Get("/estatisticas", baseHandler.Estatisticas)
	base.Get("/clientes", baseHandler.Clientes)

	// Segmentação
	segHandler := NewSegmentationHandler(deps.SegmentUC)
	seg := app.Group("/segmentation", authed)
	seg.Post("/", segHandler.Create)
	seg.Get("/", segHandler.List)
	seg.Get("/simulate/:days", segHandler.Simulate)
	seg.Get("/:id/contratos", segHandler.Contracts)
	seg.Delete("/:id", segHandler.Delete)

	// Comunicação (webhook autenticado por segredo, sem JWT)
	commHandler := NewCommunicationHandler(deps.CommunicationUC)
	app.Post("/communication/webhook", WebhookAuth(deps.ChannelWebhookSecret), commHandler.Webhook)
	comm := app.Group("/communication", authed)
	comm.Post("/send", commHandler.Send)
	comm.Get("/history", commHandler.History)

	// Pagamentos (webhook autenticado por segredo, sem JWT)
	payHandler := NewPaymentHandler(deps.PaymentUC)
	app.Post("/payments/webhook", WebhookAuth(deps.PaymentWebhookSecret), payHandler.Webhook)
	pay := app.Group("/payments", authed)
	pay.Post("/", payHandler.Create)
	pay.Get("/", payHandler.List)
	pay.Get("/:id", payHandler.GetByID)
}
