package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func TestCanTransition_CaminhoFeliz(t *testing.T) {
	assert.True(t, CanTransition(StatusScheduled, StatusConfirmed))
	assert.True(t, CanTransition(StatusConfirmed, StatusInProgress))
	assert.True(t, CanTransition(StatusInProgress, StatusCompleted))
}

func TestCanTransition_NuncaVoltaNemPula(t *testing.T) {
	assert.False(t, CanTransition(StatusConfirmed, StatusScheduled))
	assert.False(t, CanTransition(StatusInProgress, StatusConfirmed))
	assert.False(t, CanTransition(StatusScheduled, StatusCompleted))
	assert.False(t, CanTransition(StatusScheduled, StatusInProgress))
}

func TestCanTransition_TerminaisSaoImutaveis(t *testing.T) {
	terminals := []Status{StatusCompleted, StatusCancelled, StatusNoShow}
	all := []Status{
		StatusScheduled, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow,
	}

	for _, from := range terminals {
		assert.True(t, from.Terminal())
		for _, to := range all {
			assert.False(t, CanTransition(from, to),
				"transição %s -> %s deveria ser proibida", from, to)
		}
	}
}

func TestCancel_PermitidoDeEstadosAtivos(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress} {
		ap := &models.Appointment{Status: string(from)}

		err := Cancel(ap, "cliente desistiu", now)

		require.NoError(t, err, "from=%s", from)
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Equal(t, "cliente desistiu", ap.CancelReason)
		require.NotNil(t, ap.CancelledAt)
	}
}

func TestCancel_NegadoDeTerminais(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusCompleted, StatusNoShow, StatusCancelled} {
		ap := &models.Appointment{Status: string(from)}

		err := Cancel(ap, "x", now)

		require.Error(t, err, "from=%s", from)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
		// sem efeito colateral
		assert.Equal(t, string(from), ap.Status)
		assert.Nil(t, ap.CancelledAt)
	}
}

func TestComplete_ExigeInProgress(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusConfirmed)}
	err := Complete(ap, now, false)
	require.Error(t, err)
	assert.Equal(t, string(StatusConfirmed), ap.Status)

	ap.Status = string(StatusInProgress)
	require.NoError(t, Complete(ap, now, false))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestComplete_FastPathConfiguravel(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusScheduled)}
	require.NoError(t, Complete(ap, now, true))
	assert.Equal(t, string(StatusCompleted), ap.Status)

	// fast path não ressuscita terminais
	err := Complete(ap, now, true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestMarkNoShow(t *testing.T) {
	now := time.Now()

	for _, from := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress} {
		ap := &models.Appointment{Status: string(from)}
		require.NoError(t, MarkNoShow(ap, now), "from=%s", from)
		assert.Equal(t, string(StatusNoShow), ap.Status)
		require.NotNil(t, ap.NoShowAt)
	}

	ap := &models.Appointment{Status: string(StatusCancelled)}
	err := MarkNoShow(ap, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
	assert.Equal(t, string(StatusCancelled), ap.Status)
}

func TestConfirmEStart(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusScheduled)}

	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, string(StatusConfirmed), ap.Status)
	require.NotNil(t, ap.ConfirmedAt)

	require.NoError(t, Start(ap, now))
	assert.Equal(t, string(StatusInProgress), ap.Status)
	require.NotNil(t, ap.StartedAt)

	// começar duas vezes não é permitido
	err := Start(ap, now)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}
