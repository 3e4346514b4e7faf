package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

func TestDeactivateBarber_WithPendingAgenda(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	deactivate := NewDeactivateBarber(repo, locks, nil, nil, cfg)

	_, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	err = deactivate.Execute(context.Background(), testShopID, testBarberID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	barber, err := repo.GetBarber(context.Background(), testShopID, testBarberID)
	require.NoError(t, err)
	assert.True(t, barber.Active)
}

func TestDeactivateBarber_AfterCancellation(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	cancel := NewCancelAppointment(repo, locks, nil, nil, nil, cfg)
	deactivate := NewDeactivateBarber(repo, locks, nil, nil, cfg)

	ap, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)
	_, err = cancel.Execute(context.Background(), CancelAppointmentInput{
		BarbershopID:  testShopID,
		AppointmentID: ap.ID,
	})
	require.NoError(t, err)

	err = deactivate.Execute(context.Background(), testShopID, testBarberID)
	require.NoError(t, err)

	barber, err := repo.GetBarber(context.Background(), testShopID, testBarberID)
	require.NoError(t, err)
	assert.False(t, barber.Active)

	// Barbeiro desativado não aceita novos agendamentos
	_, err = create.Execute(context.Background(), createInput(testDay, "11:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeBarberInactive))
}

func TestDeactivateBarber_Unknown(t *testing.T) {
	repo, locks, cfg := newFixture()
	deactivate := NewDeactivateBarber(repo, locks, nil, nil, cfg)

	err := deactivate.Execute(context.Background(), testShopID, 777)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
