package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
)

// Checker de pagamento em memória
type fakePayments struct {
	approved map[uint]bool
}

func (f *fakePayments) HasApproved(ctx context.Context, appointmentID uint) (bool, error) {
	return f.approved[appointmentID], nil
}

func TestLifecycle_FullPath(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	confirm := NewConfirmAppointment(repo, nil)
	start := NewStartAppointment(repo, nil)
	complete := NewCompleteAppointment(repo, nil, nil, cfg)

	ap, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	ap, err = confirm.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.NotNil(t, ap.ConfirmedAt)

	ap, err = start.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), ap.Status)
	assert.NotNil(t, ap.StartedAt)

	ap, err = complete.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)
}

func TestLifecycle_CompleteRequiresInProgress(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	complete := NewCompleteAppointment(repo, nil, nil, cfg)

	ap, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	_, err = complete.Execute(context.Background(), testShopID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

// Com ALLOW_FAST_COMPLETE a recepção pula confirmar/iniciar
func TestLifecycle_FastComplete(t *testing.T) {
	repo, locks, cfg := newFixture()
	cfg.AllowFastComplete = true

	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	complete := NewCompleteAppointment(repo, nil, nil, cfg)

	ap, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	ap, err = complete.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), ap.Status)
}

func TestLifecycle_ConfirmTwiceRejected(t *testing.T) {
	repo, locks, cfg := newFixture()
	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	confirm := NewConfirmAppointment(repo, nil)

	ap, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)

	_, err = confirm.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)

	_, err = confirm.Execute(context.Background(), testShopID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestLifecycle_PaymentRequired(t *testing.T) {
	repo, locks, cfg := newFixture()
	cfg.PayLater = false
	payments := &fakePayments{approved: map[uint]bool{}}

	create := NewCreateAppointment(repo, locks, nil, nil, nil, cfg)
	confirm := NewConfirmAppointment(repo, nil)
	start := NewStartAppointment(repo, nil)
	complete := NewCompleteAppointment(repo, payments, nil, cfg)

	ap, err := create.Execute(context.Background(), createInput(testDay, "10:00"))
	require.NoError(t, err)
	_, err = confirm.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	_, err = start.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)

	// Sem pagamento aprovado → 422 payment_required
	_, err = complete.Execute(context.Background(), testShopID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodePaymentRequired))

	// Pagamento chegou → conclui
	payments.approved[ap.ID] = true
	done, err := complete.Execute(context.Background(), testShopID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)
}
