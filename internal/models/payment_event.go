package models

import "time"

// Evento de pagamento recebido do provedor (webhook), consumido
// pelo fluxo de conclusão do agendamento
type PaymentEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index" json:"appointment_id"`

	Provider   string  `gorm:"size:30" json:"provider"`
	ExternalID string  `gorm:"size:64;index" json:"external_id"`
	Amount     float64 `json:"amount"`
	Status     string  `gorm:"size:20" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
