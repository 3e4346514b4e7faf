package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER — superfície pública (sem login), escopada por slug
// ======================================================

type PublicHandler struct {
	db             *gorm.DB
	createUC       *ucAppointment.CreateAppointment
	cancelUC       *ucAppointment.CancelAppointment
	availabilityUC *ucAppointment.GetDayAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	availabilityUC *ucAppointment.GetDayAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		createUC:       createUC,
		cancelUC:       cancelUC,
		availabilityUC: availabilityUC,
	}
}

func (h *PublicHandler) shopBySlug(c *gin.Context) (*models.Barbershop, bool) {
	var shop models.Barbershop
	if err := h.db.
		Where("slug = ?", c.Param("slug")).
		First(&shop).Error; err != nil {
		httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
		return nil, false
	}
	return &shop, true
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("barbershop_id = ? AND active = ?", shop.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// BARBERS
// ======================================================

type PublicBarberDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var barbers []models.User
	if err := h.db.
		Where("barbershop_id = ? AND active = ?", shop.ID, true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	out := make([]PublicBarberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, PublicBarberDTO{ID: b.ID, Name: b.Name})
	}
	httpresp.List(c, out)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe ?date=YYYY-MM-DD.")
		return
	}

	summary, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.GetDayAvailabilityInput{
		BarbershopID: shop.ID,
		Date:         date,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, summary)
}

// ======================================================
// CREATE
// ======================================================

type PublicCreateAppointmentRequest struct {
	BarberID    uint   `json:"barber_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// O cliente recebe só o reference (UUID), nunca IDs internos
type PublicAppointmentDTO struct {
	Reference string `json:"reference"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: shop.ID,
		BarberID:     req.BarberID,
		ClientName:   req.ClientName,
		ClientPhone:  req.ClientPhone,
		ClientEmail:  req.ClientEmail,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.Created(c, PublicAppointmentDTO{
		Reference: ap.Reference,
		Date:      req.Date,
		Time:      req.Time,
		Status:    ap.Status,
	})
}

// ======================================================
// LOOKUP / CANCEL POR REFERENCE
// ======================================================

func (h *PublicHandler) GetAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("reference = ? AND barbershop_id = ?", c.Param("reference"), shop.ID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	httpresp.OK(c, PublicAppointmentDTO{
		Reference: ap.Reference,
		Date:      ap.StartTime.Format("2006-01-02"),
		Time:      ap.StartTime.Format("15:04"),
		Status:    ap.Status,
	})
}

func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	shop, ok := h.shopBySlug(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("reference = ? AND barbershop_id = ?", c.Param("reference"), shop.ID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	cancelled, err := h.cancelUC.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		BarbershopID:  shop.ID,
		AppointmentID: ap.ID,
		Reason:        "cancelled_by_client",
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, PublicAppointmentDTO{
		Reference: cancelled.Reference,
		Date:      cancelled.StartTime.Format("2006-01-02"),
		Time:      cancelled.StartTime.Format("15:04"),
		Status:    cancelled.Status,
	})
}
