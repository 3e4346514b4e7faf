package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/cache"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
	"github.com/BruksfildServices01/barber-agenda/internal/validators"
)

// ======================================================
// USE CASE — disponibilidade do dia
// ======================================================

type GetDayAvailabilityInput struct {
	BarbershopID uint
	Date         string

	// Opcional: restringir a um barbeiro (0 = todos os ativos)
	BarberID uint
}

type GetDayAvailability struct {
	repo  domain.Repository
	cache *cache.Availability
	cfg   *config.Config
}

func NewGetDayAvailability(
	repo domain.Repository,
	availCache *cache.Availability,
	cfg *config.Config,
) *GetDayAvailability {
	return &GetDayAvailability{repo: repo, cache: availCache, cfg: cfg}
}

func (uc *GetDayAvailability) Execute(
	ctx context.Context,
	in GetDayAvailabilityInput,
) (*schedule.DaySummary, error) {

	if !validators.IsValidDate(in.Date) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	// Cache só cobre a visão do dia inteiro (todos os barbeiros)
	useCache := in.BarberID == 0
	if useCache {
		var cached schedule.DaySummary
		if uc.cache.Get(ctx, in.BarbershopID, in.Date, &cached) {
			return &cached, nil
		}
	}

	var barbers []models.User
	if in.BarberID != 0 {
		barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
		if err != nil {
			return nil, err
		}
		barbers = []models.User{*barber}
	} else {
		barbers, err = uc.repo.ListActiveBarbers(ctx, in.BarbershopID)
		if err != nil {
			return nil, err
		}
	}

	dayStart, dayEnd := dayBounds(date)

	days := make([]schedule.BarberDay, 0, len(barbers))
	for _, barber := range barbers {
		hours, err := uc.repo.ListWorkingHours(ctx, barber.ID, int(date.Weekday()))
		if err != nil {
			return nil, err
		}

		apps, err := uc.repo.ListDayAppointments(ctx, barber.ID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}

		days = append(days, schedule.BarberDay{
			BarberID: barber.ID,
			Shifts:   shiftsFor(date, hours),
			Busy:     busyFrom(apps),
		})
	}

	summary := schedule.ComputeDay(days, uc.cfg.FreeThreshold, uc.cfg.SlotGranularity)

	if useCache {
		uc.cache.Set(ctx, in.BarbershopID, in.Date, summary)
	}

	return &summary, nil
}
