package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/payment"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
)

// ======================================================
// USE CASE — concluir atendimento
// ======================================================

type CompleteAppointment struct {
	repo     domain.Repository
	payments payment.Checker
	audit    *audit.Dispatcher
	cfg      *config.Config
}

func NewCompleteAppointment(
	repo domain.Repository,
	payments payment.Checker,
	auditDisp *audit.Dispatcher,
	cfg *config.Config,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:     repo,
		payments: payments,
		audit:    auditDisp,
		cfg:      cfg,
	}
}

func (uc *CompleteAppointment) Execute(
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

		// Política de pagamento: sem PAY_LATER, só conclui com
		// pagamento aprovado registrado
		if !uc.cfg.PayLater && uc.payments != nil {
			paid, err := uc.payments.HasApproved(ctx, fresh.ID)
			if err != nil {
				return err
			}
			if !paid {
				return httperr.ErrBusiness(httperr.CodePaymentRequired)
			}
		}

		if err := domain.Complete(fresh, now, uc.cfg.AllowFastComplete); err != nil {
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
		Action:       "appointment_completed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
