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
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	locks   *lock.Keyed
	audit   *audit.Dispatcher
	cache   *cache.Availability
	metrics *metrics.Metrics
	cfg     *config.Config
}

func NewCreateAppointment(
	repo domain.Repository,
	locks *lock.Keyed,
	auditDisp *audit.Dispatcher,
	availCache *cache.Availability,
	m *metrics.Metrics,
	cfg *config.Config,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		locks:   locks,
		audit:   auditDisp,
		cache:   availCache,
		metrics: m,
		cfg:     cfg,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Validação de entrada — antes de qualquer lock
	// --------------------------------------------------
	if in.BarberID == 0 || in.ServiceID == 0 ||
		in.ClientName == "" || in.ClientPhone == "" ||
		!validators.IsValidDate(in.Date) || !validators.IsValidClock(in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// Barbearia + data/hora no timezone dela
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// --------------------------------------------------
	// Antecedência mínima
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Barbeiro ativo
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness(httperr.CodeBarberInactive)
	}

	// --------------------------------------------------
	// Serviço ativo; fim = início + duração do serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, httperr.ErrBusiness(httperr.CodeServiceInactive)
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)
	if !sameDay(start, end) {
		// agendamento nunca cruza o dia
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	// --------------------------------------------------
	// Expediente do weekday
	// --------------------------------------------------
	hours, err := uc.repo.ListWorkingHours(ctx, in.BarberID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}

	slot := schedule.Interval{Start: start, End: end}
	if !withinShifts(slot, shiftsFor(start, hours)) {
		return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
	}

	// --------------------------------------------------
	// Cliente (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Seção crítica: lock do barbeiro → re-checar → gravar
	// --------------------------------------------------
	release, err := uc.locks.Acquire(ctx, in.BarberID, uc.cfg.LockTimeout)
	if err != nil {
		uc.metrics.LockTimeout()
		return nil, err
	}
	defer release()

	var created *models.Appointment

	err = uc.repo.Transact(ctx, func(r domain.Repository) error {
		conflicts, err := r.ListConflicts(ctx, in.BarberID, start, end, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}

		ap := &models.Appointment{
			Reference:    uuid.NewString(),
			BarbershopID: in.BarbershopID,
			BarberID:     in.BarberID,
			ClientID:     client.ID,
			ServiceID:    service.ID,
			StartTime:    start,
			EndTime:      end,
			DurationMin:  service.DurationMin,
			Status:       string(domain.InitialStatus()),
			Notes:        in.Notes,
		}

		if err := r.CreateAppointment(ctx, ap); err != nil {
			return err
		}

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
	uc.cache.InvalidateDay(ctx, in.BarbershopID, in.Date)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &created.ID,
	})

	return created, nil
}
