package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/cache"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// ======================================================
// USE CASE — cancelar agendamento
// ======================================================

type CancelAppointmentInput struct {
	BarbershopID  uint
	AppointmentID uint
	Reason        string
}

type CancelAppointment struct {
	repo    domain.Repository
	locks   *lock.Keyed
	audit   *audit.Dispatcher
	cache   *cache.Availability
	metrics *metrics.Metrics
	cfg     *config.Config
}

func NewCancelAppointment(
	repo domain.Repository,
	locks *lock.Keyed,
	auditDisp *audit.Dispatcher,
	availCache *cache.Availability,
	m *metrics.Metrics,
	cfg *config.Config,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		locks:   locks,
		audit:   auditDisp,
		cache:   availCache,
		metrics: m,
		cfg:     cfg,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if ap.BarbershopID != in.BarbershopID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	// Cancelar de novo é no-op: retorna o registro como está
	if ap.Status == string(domain.StatusCancelled) {
		return ap, nil
	}

	release, err := uc.locks.Acquire(ctx, ap.BarberID, uc.cfg.LockTimeout)
	if err != nil {
		uc.metrics.LockTimeout()
		return nil, err
	}
	defer release()

	shop, err := uc.repo.GetBarbershopByID(ctx, ap.BarbershopID)
	if err != nil {
		return nil, err
	}
	now := timezone.NowIn(shop.Timezone)

	err = uc.repo.Transact(ctx, func(r domain.Repository) error {
		// reconsulta dentro da transação: o status pode ter mudado
		fresh, err := r.GetAppointmentByID(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		if fresh.Status == string(domain.StatusCancelled) {
			ap = fresh
			return nil
		}

		if err := domain.Cancel(fresh, in.Reason, now); err != nil {
			return err
		}
		if err := r.UpdateAppointment(ctx, fresh); err != nil {
			return err
		}

		ap = fresh
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Cancelled()
	uc.cache.InvalidateDay(
		ctx,
		ap.BarbershopID,
		ap.StartTime.In(timezone.Location(shop.Timezone)).Format("2006-01-02"),
	)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: ap.BarbershopID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"reason": in.Reason},
	})

	return ap, nil
}
