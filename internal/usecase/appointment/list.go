package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/timezone"
	"github.com/BruksfildServices01/barber-agenda/internal/validators"
)

// ======================================================
// USE CASE — listagens da agenda
// ======================================================

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ByDate lista a agenda do barbeiro num dia (todas as situações,
// inclusive canceladas: a visão do barbeiro mostra o histórico do dia)
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	if !validators.IsValidDate(date) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetBarber(ctx, barbershopID, barberID); err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	start, end := dayBounds(day)
	return uc.repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
}

// ByMonth lista a agenda do barbeiro num mês ("2006-01")
func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	month string,
) ([]models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetBarber(ctx, barbershopID, barberID); err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start, err := time.ParseInLocation("2006-01", month, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	end := start.AddDate(0, 1, 0)

	return uc.repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
}
