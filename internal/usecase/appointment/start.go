package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// ======================================================
// USE CASE — iniciar atendimento
// ======================================================

type StartAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewStartAppointment(repo domain.Repository, auditDisp *audit.Dispatcher) *StartAppointment {
	return &StartAppointment{repo: repo, audit: auditDisp}
}

func (uc *StartAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	now := timezone.NowIn(shop.Timezone)

	var ap *models.Appointment

	err = uc.repo.Transact(ctx, func(r domain.Repository) error {
		fresh, err := r.GetAppointmentByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if fresh.BarbershopID != barbershopID {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		if err := domain.Start(fresh, now); err != nil {
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

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		Action:       "appointment_started",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
