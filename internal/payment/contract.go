package payment

import "context"

// Notificação de pagamento já verificada junto ao provedor
type Notification struct {
	ExternalID string
	Status     string
	Amount     float64
	// Referência pública do agendamento (UUID), enviada ao provedor
	// como external_reference na criação da cobrança
	AppointmentRef string
}

const StatusApproved = "approved"

// Verifier consulta o provedor para confirmar a notificação recebida
// no webhook (nunca confiamos no payload cru)
type Verifier interface {
	Verify(ctx context.Context, externalID string) (*Notification, error)
}

// Checker responde se um agendamento tem pagamento aprovado; é o
// colaborador consumido pela conclusão do agendamento
type Checker interface {
	HasApproved(ctx context.Context, appointmentID uint) (bool, error)
}
