package payment

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

const providerMercadoPago = "mercadopago"

// Store guarda eventos de pagamento e responde consultas de conclusão
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Record(ctx context.Context, appointmentID uint, n *Notification) error {
	ev := models.PaymentEvent{
		AppointmentID: appointmentID,
		Provider:      providerMercadoPago,
		ExternalID:    n.ExternalID,
		Amount:        n.Amount,
		Status:        n.Status,
	}
	return s.db.WithContext(ctx).Create(&ev).Error
}

func (s *Store) HasApproved(ctx context.Context, appointmentID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.PaymentEvent{}).
		Where("appointment_id = ? AND status = ?", appointmentID, StatusApproved).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ Checker = (*Store)(nil)
