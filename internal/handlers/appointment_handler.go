package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-agenda/internal/dto"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	cancelUC     *ucAppointment.CancelAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	confirmUC    *ucAppointment.ConfirmAppointment
	startUC      *ucAppointment.StartAppointment
	completeUC   *ucAppointment.CompleteAppointment
	listUC       *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	startUC *ucAppointment.StartAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		confirmUC:    confirmUC,
		startUC:      startUC,
		completeUC:   completeUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	NewBarberID uint   `json:"new_barber_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		BarbershopID: barbershopID,
		BarberID:     barberID,
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

	httpresp.Created(c, ap)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	// corpo é opcional: cancelar sem motivo vale
	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancelUC.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		BarbershopID:  barbershopID,
		AppointmentID: id,
		Reason:        req.Reason,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		BarbershopID:  barbershopID,
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		NewBarberID:   req.NewBarberID,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirmUC.Execute)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	h.transition(c, h.startUC.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.completeUC.Execute)
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	exec func(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error),
) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := exec(c.Request.Context(), barbershopID, id)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe ?date=YYYY-MM-DD.")
		return
	}

	apps, err := h.listUC.ByDate(c.Request.Context(), barbershopID, barberID, date)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.List(c, toListDTO(apps))
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	month := c.Query("month")
	if month == "" {
		httperr.BadRequest(c, "missing_month", "Informe ?month=YYYY-MM.")
		return
	}

	apps, err := h.listUC.ByMonth(c.Request.Context(), barbershopID, barberID, month)
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.List(c, toListDTO(apps))
}

// ======================================================
// HELPERS
// ======================================================

func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

func toListDTO(apps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Reference:   ap.Reference,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
		})
	}
	return out
}

func writeAppointmentError(c *gin.Context, err error) {
	if httperr.WriteBusiness(c, err, messageFor(err)) {
		return
	}
	httperr.Internal(c, "internal_error", "Erro interno.")
}

func messageFor(err error) string {
	code, _ := httperr.BusinessCode(err)
	switch code {
	case httperr.CodeSlotConflict:
		return "Horário já ocupado."
	case httperr.CodeOutsideWorkingHours:
		return "Fora do horário de atendimento."
	case httperr.CodeServiceInactive:
		return "Serviço desativado."
	case httperr.CodeBarberInactive:
		return "Barbeiro desativado."
	case httperr.CodeInvalidState:
		return "Transição de status inválida."
	case httperr.CodePaymentRequired:
		return "Pagamento pendente."
	case httperr.CodeNotFound:
		return "Registro não encontrado."
	case httperr.CodeBusy:
		return "Agenda ocupada, tente novamente."
	case "too_soon":
		return "Horário inválido."
	default:
		return "Dados inválidos."
	}
}
