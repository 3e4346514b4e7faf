package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func TestGetDayAvailability_EmptyDayIsFree(t *testing.T) {
	repo, _, cfg := newFixture()
	uc := NewGetDayAvailability(repo, nil, cfg)

	summary, err := uc.Execute(context.Background(), GetDayAvailabilityInput{
		BarbershopID: testShopID,
		Date:         testDay,
	})
	require.NoError(t, err)

	assert.Equal(t, schedule.DayFree, summary.Status)
	// Só os dois barbeiros ativos entram na conta
	assert.Len(t, summary.Barbers, 2)
	for _, barber := range summary.Barbers {
		require.Len(t, barber.Free, 1)
		assert.Equal(t, 9*time.Hour, barber.Free[0].Duration())
	}
}

func TestGetDayAvailability_BookingMakesPartial(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	uc := NewGetDayAvailability(repo, nil, cfg)

	_, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	summary, err := uc.Execute(context.Background(), GetDayAvailabilityInput{
		BarbershopID: testShopID,
		Date:         testDay,
	})
	require.NoError(t, err)
	assert.Equal(t, schedule.DayPartial, summary.Status)
}

func TestGetDayAvailability_FullyBookedDay(t *testing.T) {
	repo, _, cfg := newFixture()
	uc := NewGetDayAvailability(repo, nil, cfg)

	// Ocupa o expediente inteiro dos dois barbeiros ativos
	day, err := time.Parse("2006-01-02", testDay)
	require.NoError(t, err)
	start := day.Add(9 * time.Hour)
	end := day.Add(18 * time.Hour)

	for i, barberID := range []uint{testBarberID, testOtherBarberID} {
		err := repo.CreateAppointment(context.Background(), &models.Appointment{
			Reference:    "full-day",
			BarbershopID: testShopID,
			BarberID:     barberID,
			StartTime:    start,
			EndTime:      end,
			Status:       "scheduled",
			DurationMin:  540 + i,
		})
		require.NoError(t, err)
	}

	summary, err := uc.Execute(context.Background(), GetDayAvailabilityInput{
		BarbershopID: testShopID,
		Date:         testDay,
	})
	require.NoError(t, err)

	assert.Equal(t, schedule.DayNoSlots, summary.Status)
	for _, barber := range summary.Barbers {
		assert.Empty(t, barber.Free)
	}
}

// Cancelamento devolve o horário na mesma hora
func TestGetDayAvailability_ReflectsCancellation(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	cancel := NewCancelAppointment(repo, locks, nil, nil, nil, cfg)
	uc := NewGetDayAvailability(repo, nil, cfg)

	ap, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	summary, err := uc.Execute(context.Background(), GetDayAvailabilityInput{
		BarbershopID: testShopID,
		Date:         testDay,
	})
	require.NoError(t, err)
	require.Equal(t, schedule.DayPartial, summary.Status)

	_, err = cancel.Execute(context.Background(), CancelAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: ap.ID,
	})
	require.NoError(t, err)

	summary, err = uc.Execute(context.Background(), GetDayAvailabilityInput{
		BarbershopID: testShopID,
		Date:         testDay,
	})
	require.NoError(t, err)
	assert.Equal(t, schedule.DayFree, summary.Status)
}

func TestGetDayAvailability_SingleBarber(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	uc := NewGetDayAvailability(repo, nil, cfg)

	_, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	// Visão restrita ao outro barbeiro: dia livre
	summary, err := uc.Execute(context.Background(), GetDayAvailabilityInput{
		BarbershopID: testShopID,
		Date:         testDay,
		BarberID:     testOtherBarberID,
	})
	require.NoError(t, err)

	assert.Equal(t, schedule.DayFree, summary.Status)
	require.Len(t, summary.Barbers, 1)
	assert.Equal(t, testOtherBarberID, summary.Barbers[0].BarberID)
}
