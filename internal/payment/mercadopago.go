package payment

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
)

// Verifier baseado no SDK do Mercado Pago: recebe o id notificado no
// webhook e busca o pagamento real na API
type MercadoPagoVerifier struct {
	client mppayment.Client
}

func NewMercadoPagoVerifier(accessToken string) (*MercadoPagoVerifier, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoVerifier{client: mppayment.NewClient(cfg)}, nil
}

func (v *MercadoPagoVerifier) Verify(ctx context.Context, externalID string) (*Notification, error) {
	id, err := strconv.Atoi(externalID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q: %w", externalID, err)
	}

	res, err := v.client.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment %d: %w", id, err)
	}

	return &Notification{
		ExternalID:     externalID,
		Status:         res.Status,
		Amount:         res.TransactionAmount,
		AppointmentRef: res.ExternalReference,
	}, nil
}
