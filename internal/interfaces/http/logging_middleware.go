package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cordobafintech/cobranca-api/internal/infrastructure/metrics"
)

// RequestLogger registra cada requisição (método, rota, status, latência, IP)
// e alimenta as métricas HTTP. O logger também vai para o UserContext.
func RequestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.SetUserContext(log.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// Deixa o ErrorHandler escrever a resposta para registrar o status final.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		latency := time.Since(start)
		route := c.Route().Path

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.IP()).
			Msg("request")

		metrics.RecordHTTPRequest(c.Method(), route, status, latency)
		return nil
	}
}
