package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
)

// ======================================================
// USE CASE — desativar barbeiro
// ======================================================

type DeactivateBarber struct {
	repo    domain.Repository
	locks   *lock.Keyed
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	cfg     *config.Config
}

func NewDeactivateBarber(
	repo domain.Repository,
	locks *lock.Keyed,
	auditDisp *audit.Dispatcher,
	m *metrics.Metrics,
	cfg *config.Config,
) *DeactivateBarber {
	return &DeactivateBarber{
		repo:    repo,
		locks:   locks,
		audit:   auditDisp,
		metrics: m,
		cfg:     cfg,
	}
}

// Execute desativa o barbeiro. Barbeiro com agendamento ativo na agenda
// não pode ser desativado: primeiro cancela ou conclui os atendimentos.
// O lock impede a corrida com um booking em voo para o mesmo barbeiro.
func (uc *DeactivateBarber) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) error {

	if _, err := uc.repo.GetBarber(ctx, barbershopID, barberID); err != nil {
		return err
	}

	release, err := uc.locks.Acquire(ctx, barberID, uc.cfg.LockTimeout)
	if err != nil {
		uc.metrics.LockTimeout()
		return err
	}
	defer release()

	err = uc.repo.Transact(ctx, func(r domain.Repository) error {
		pending, err := r.CountNonTerminalByBarber(ctx, barberID)
		if err != nil {
			return err
		}
		if pending > 0 {
			return httperr.ErrBusiness(httperr.CodeInvalidState)
		}

		return r.SetBarberActive(ctx, barbershopID, barberID, false)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		Action:       "barber_deactivated",
		Entity:       "user",
		EntityID:     &barberID,
	})

	return nil
}
