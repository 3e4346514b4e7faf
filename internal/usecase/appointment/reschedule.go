package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/cache"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
	"github.com/BruksfildServices01/barber-agenda/internal/validators"
)

// ======================================================
// USE CASE — reagendar (cancela + recria, tudo ou nada)
// ======================================================

type RescheduleAppointmentInput struct {
	BarbershopID  uint
	AppointmentID uint

	// Novo horário
	Date string
	Time string

	// Opcional: mudar de barbeiro junto (0 = manter o atual)
	NewBarberID uint
}

type RescheduleAppointment struct {
	repo    domain.Repository
	locks   *lock.Keyed
	audit   *audit.Dispatcher
	cache   *cache.Availability
	metrics *metrics.Metrics
	cfg     *config.Config
}

func NewRescheduleAppointment(
	repo domain.Repository,
	locks *lock.Keyed,
	auditDisp *audit.Dispatcher,
	availCache *cache.Availability,
	m *metrics.Metrics,
	cfg *config.Config,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		locks:   locks,
		audit:   auditDisp,
		cache:   availCache,
		metrics: m,
		cfg:     cfg,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if !validators.IsValidDate(in.Date) || !validators.IsValidClock(in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	old, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if old.BarbershopID != in.BarbershopID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// Duração congelada no agendamento original
	end := start.Add(time.Duration(old.DurationMin) * time.Minute)
	if !sameDay(start, end) {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	targetBarberID := old.BarberID
	if in.NewBarberID != 0 {
		targetBarberID = in.NewBarberID
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, targetBarberID)
	if err != nil {
		return nil, err
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness(httperr.CodeBarberInactive)
	}

	hours, err := uc.repo.ListWorkingHours(ctx, targetBarberID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	slot := schedule.Interval{Start: start, End: end}
	if !withinShifts(slot, shiftsFor(start, hours)) {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	// Trava os dois barbeiros em ordem canônica (podem ser o mesmo)
	release, err := uc.locks.AcquireMany(
		ctx,
		[]uint{old.BarberID, targetBarberID},
		uc.cfg.LockTimeout,
	)
	if err != nil {
		uc.metrics.LockTimeout()
		return nil, err
	}
	defer release()

	now := timezone.NowIn(shop.Timezone)

	var created *models.Appointment

	err = uc.repo.Transact(ctx, func(r domain.Repository) error {
		fresh, err := r.GetAppointmentByID(ctx, in.AppointmentID)
		if err != nil {
			return err
		}

		// O slot novo precisa estar livre ANTES de mexer no antigo:
		// em conflito, nada muda
		conflicts, err := r.ListConflicts(ctx, targetBarberID, start, end, fresh.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}

		if err := domain.Cancel(fresh, "rescheduled", now); err != nil {
			return err
		}
		if err := r.UpdateAppointment(ctx, fresh); err != nil {
			return err
		}

		ap := &models.Appointment{
			Reference:         uuid.NewString(),
			BarbershopID:      fresh.BarbershopID,
			BarberID:          targetBarberID,
			ClientID:          fresh.ClientID,
			ServiceID:         fresh.ServiceID,
			StartTime:         start,
			EndTime:           end,
			DurationMin:       fresh.DurationMin,
			Status:            string(domain.InitialStatus()),
			Notes:             fresh.Notes,
			RescheduledFromID: &fresh.ID,
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		old = fresh
		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotConflict) {
			uc.metrics.SlotConflict()
		}
		return nil, err
	}

	uc.metrics.BookingCreated()
	uc.cache.InvalidateDay(ctx, in.BarbershopID, old.StartTime.In(loc).Format("2006-01-02"))
	uc.cache.InvalidateDay(ctx, in.BarbershopID, in.Date)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		Action:       "appointment_rescheduled",
		Entity:       "appointment",
		EntityID:     &created.ID,
		Metadata:     map[string]any{"from_appointment_id": old.ID},
	})

	return created, nil
}
