package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opções do logger.
type Config struct {
	Env     string // development -> console legível; demais -> JSON
	Level   string // trace, debug, info, warn, error
	App     string
	Version string
}

// Logger envolve o zerolog para injeção nas camadas da aplicação.
type Logger struct {
	zl zerolog.Logger
}

// New cria o logger estruturado e redireciona o logger global do zerolog.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}
	}

	ctx := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.App != "" {
		ctx = ctx.Str("app", cfg.App)
	}
	if cfg.Version != "" {
		ctx = ctx.Str("version", cfg.Version)
	}
	zl := ctx.Logger()

	log.Logger = zl
	return &Logger{zl: zl}
}

// Nop devolve um logger que descarta tudo (útil em testes).
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Service cria um sublogger com o campo "service" fixo.
func (l *Logger) Service(name string) zerolog.Logger {
	return l.zl.With().Str("service", name).Logger()
}

// Zerolog devolve o logger interno.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
