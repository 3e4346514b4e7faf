package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

func TestRescheduleAppointment_Success(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	reschedule := NewRescheduleAppointment(repo, locks, nil, nil, nil, cfg)

	old, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	moved, err := reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: old.ID,
		Date:          testDay,
		Time:          "15:00",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusScheduled), moved.Status)
	assert.Equal(t, old.BarberID, moved.BarberID)
	assert.Equal(t, old.DurationMin, moved.DurationMin)
	require.NotNil(t, moved.RescheduledFromID)
	assert.Equal(t, old.ID, *moved.RescheduledFromID)
	assert.NotEqual(t, old.Reference, moved.Reference)

	stored, err := repo.GetAppointmentByID(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)
	assert.Equal(t, "rescheduled", stored.CancelReason)
}

// Slot de destino ocupado: nada muda, nem o antigo nem um novo registro
func TestRescheduleAppointment_ConflictKeepsOriginal(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	reschedule := NewRescheduleAppointment(repo, locks, nil, nil, nil, cfg)

	old, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)
	_, err = create.Execute(context.Background(), createInput(testDay, "15:00"))
	require.NoError(t, err)

	_, err = reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: old.ID,
		Date:          testDay,
		Time:          "15:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotConflict))

	stored, err := repo.GetAppointmentByID(context.Background(), old.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), stored.Status)
	assert.Empty(t, stored.CancelReason)
}

// Reagendar para o mesmo horário não conflita consigo mesmo
func TestRescheduleAppointment_SameSlot(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	reschedule := NewRescheduleAppointment(repo, locks, nil, nil, nil, cfg)

	old, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	moved, err := reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: old.ID,
		Date:          testDay,
		Time:          "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, old.StartTime.Unix(), moved.StartTime.Unix())
}

func TestRescheduleAppointment_ToAnotherBarber(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	reschedule := NewRescheduleAppointment(repo, locks, nil, nil, nil, cfg)

	old, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	moved, err := reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: old.ID,
		Date:          testDay,
		Time:          "10:00",
		NewBarberID:   testOtherBarberID,
	})
	require.NoError(t, err)
	assert.Equal(t, testOtherBarberID, moved.BarberID)

	// O slot do barbeiro original ficou livre
	_, err = create.Execute(context.Background(), createInput(testDay, "10:00"))
	assert.NoError(t, err)
}

func TestRescheduleAppointment_ToInactiveBarber(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	reschedule := NewRescheduleAppointment(repo, locks, nil, nil, nil, cfg)

	old, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	_, err = reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: old.ID,
		Date:          testDay,
		Time:          "11:00",
		NewBarberID:   testInactiveBarber,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberInactive))
}

func TestRescheduleAppointment_CancelledCannotMove(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	cancel := NewCancelAppointment(repo, locks, nil, nil, nil, cfg)
	reschedule := NewRescheduleAppointment(repo, locks, nil, nil, nil, cfg)

	old, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)
	_, err = cancel.Execute(context.Background(), CancelAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: old.ID,
	})
	require.NoError(t, err)

	_, err = reschedule.Execute(context.Background(), RescheduleAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: old.ID,
		Date:          testDay,
		Time:          "15:00",
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}
