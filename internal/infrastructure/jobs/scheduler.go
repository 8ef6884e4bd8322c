package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultOverdueSpec roda todo dia às 03:00 (formato com segundos).
const DefaultOverdueSpec = "0 0 3 * * *"

// OverdueMarker é o que o job precisa do repositório de contratos.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, today time.Time) (int64, error)
}

// Scheduler executa os jobs periódicos da carteira.
type Scheduler struct {
	cron      *cron.Cron
	contratos OverdueMarker
	spec      string
	timeout   time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewScheduler cria o agendador. spec vazio usa DefaultOverdueSpec.
func NewScheduler(contratos OverdueMarker, spec string, log zerolog.Logger) *Scheduler {
	if spec == "" {
		spec = DefaultOverdueSpec
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		contratos: contratos,
		spec:      spec,
		timeout:   5 * time.Minute,
		now:       time.Now,
		log:       log,
	}
}

// Start registra os jobs e inicia o cron em background.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.markOverdue); err != nil {
		return fmt.Errorf("jobs: agenda %q inválida: %w", s.spec, err)
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Msg("agendador iniciado")
	return nil
}

// Stop para o cron e espera o job em execução, até o prazo de ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("agendador parado com job em execução")
	}
}

func (s *Scheduler) markOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.contratos.MarkOverdue(ctx, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("falha ao marcar contratos atrasados")
		return
	}
	s.log.Info().Int64("contratos", n).Dur("duracao", time.Since(start)).Msg("contratos vencidos marcados como atrasados")
}
