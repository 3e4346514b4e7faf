package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/payment"
)

// ======================================================
// HANDLER — webhook do Mercado Pago
// ======================================================

// O payload do webhook nunca é confiado: o id notificado é reconsultado
// na API do provedor antes de registrar qualquer coisa.
type PaymentWebhookHandler struct {
	db       *gorm.DB
	verifier payment.Verifier
	store    *payment.Store
	log      *zap.SugaredLogger
}

func NewPaymentWebhookHandler(
	db *gorm.DB,
	verifier payment.Verifier,
	store *payment.Store,
	log *zap.SugaredLogger,
) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{
		db:       db,
		verifier: verifier,
		store:    store,
		log:      log,
	}
}

func (h *PaymentWebhookHandler) Receive(c *gin.Context) {
	// Mercado Pago reenvia até receber 200; respondemos 200 mesmo para
	// eventos que ignoramos
	if c.Query("type") != "payment" {
		c.Status(http.StatusOK)
		return
	}

	externalID := c.Query("data.id")
	if externalID == "" {
		externalID = c.Query("id")
	}
	if externalID == "" {
		c.Status(http.StatusOK)
		return
	}

	if h.verifier == nil {
		h.log.Warnw("payment webhook received but no access token configured")
		c.Status(http.StatusServiceUnavailable)
		return
	}

	notification, err := h.verifier.Verify(c.Request.Context(), externalID)
	if err != nil {
		h.log.Errorw("payment verification failed",
			"external_id", externalID, "err", err)
		// 500 faz o provedor reenviar mais tarde
		c.Status(http.StatusInternalServerError)
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("reference = ?", notification.AppointmentRef).
		First(&ap).Error; err != nil {
		h.log.Warnw("payment for unknown appointment",
			"external_id", externalID,
			"reference", notification.AppointmentRef)
		c.Status(http.StatusOK)
		return
	}

	if err := h.store.Record(c.Request.Context(), ap.ID, notification); err != nil {
		h.log.Errorw("payment event persist failed",
			"appointment_id", ap.ID, "err", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	h.log.Infow("payment event recorded",
		"appointment_id", ap.ID,
		"status", notification.Status,
		"amount", notification.Amount)

	c.Status(http.StatusOK)
}
