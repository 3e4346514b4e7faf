package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

const defaultBatchSize = 200

// Store é o recorte do repositório que a varredura usa
type Store interface {
	ListNoShowCandidates(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error)
	MarkNoShow(ctx context.Context, appointmentID uint, fromStatus string, now time.Time) (bool, error)
}

// Sweeper marca como no_show agendamentos scheduled/confirmed cujo
// horário já passou há mais que o período de tolerância. Atendimentos
// in_progress nunca entram: o cliente apareceu.
//
// Cada linha é um compare-and-set individual: se um cancelamento ou
// conclusão concorrente mudar o status primeiro, a linha é pulada e a
// varredura segue. Rodar duas vezes não marca nada em dobro.
type Sweeper struct {
	store   Store
	log     *zap.SugaredLogger
	audit   *audit.Dispatcher
	metrics *metrics.Metrics

	grace    time.Duration
	interval time.Duration
	batch    int

	now func() time.Time
}

func New(
	store Store,
	log *zap.SugaredLogger,
	auditDisp *audit.Dispatcher,
	m *metrics.Metrics,
	grace time.Duration,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		store:    store,
		log:      log,
		audit:    auditDisp,
		metrics:  m,
		grace:    grace,
		interval: interval,
		batch:    defaultBatchSize,
		now:      time.Now,
	}
}

// Run roda a varredura periódica até o ctx ser cancelado
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Infow("no-show sweeper started",
		"interval", s.interval, "grace", s.grace)

	for {
		select {
		case <-ctx.Done():
			s.log.Infow("no-show sweeper stopped")
			return
		case <-ticker.C:
			swept, err := s.SweepOnce(ctx)
			if err != nil {
				s.log.Errorw("no-show sweep failed", "err", err)
				continue
			}
			if swept > 0 {
				s.log.Infow("no-show sweep done", "swept", swept)
			}
		}
	}
}

// SweepOnce faz uma passada e retorna quantos agendamentos marcou
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.Add(-s.grace)

	candidates, err := s.store.ListNoShowCandidates(ctx, cutoff, s.batch)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, ap := range candidates {
		ok, err := s.store.MarkNoShow(ctx, ap.ID, ap.Status, now)
		if err != nil {
			// falha numa linha não derruba o lote
			s.log.Warnw("no-show mark failed",
				"appointment_id", ap.ID, "err", err)
			continue
		}
		if !ok {
			// outra transição venceu a corrida
			continue
		}

		swept++
		s.metrics.NoShowSwept()
		s.audit.Dispatch(audit.Event{
			BarbershopID: ap.BarbershopID,
			Action:       "appointment_no_show",
			Entity:       "appointment",
			EntityID:     &ap.ID,
		})
	}

	return swept, nil
}
