package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// AppOptions configuração do servidor Fiber.
type AppOptions struct {
	Name           string
	BodyLimitBytes int
	CORSOrigins    []string
	RateLimit      int // requisições por minuto por IP; 0 desliga
}

// NewApp cria o fiber.App com os middlewares globais: recover, CORS, log de acesso e rate limit.
func NewApp(opts AppOptions, log zerolog.Logger) *fiber.App {
	bodyLimit := opts.BodyLimitBytes
	if bodyLimit <= 0 {
		bodyLimit = 4 * 1024 * 1024
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		BodyLimit:    bodyLimit,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(log),
	})

	// O log de acesso fica por fora do recover para registrar panics como 500.
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(opts.CORSOrigins)))
	if opts.RateLimit > 0 {
		app.Use(RateLimit(opts.RateLimit))
	}
	return app
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowOrigins = "*"
		return cfg
	}
	cfg.AllowOrigins = strings.Join(origins, ",")
	cfg.AllowCredentials = true
	return cfg
}
