package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availabilityUC *ucAppointment.GetDayAvailability
}

func NewAvailabilityHandler(availabilityUC *ucAppointment.GetDayAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUC: availabilityUC}
}

// Get responde a visão do dia da barbearia logada.
// ?date=YYYY-MM-DD obrigatório; ?barber_id restringe a um barbeiro.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Informe ?date=YYYY-MM-DD.")
		return
	}

	var barberID uint
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "barber_id inválido.")
			return
		}
		barberID = uint(id)
	}

	summary, err := h.availabilityUC.Execute(c.Request.Context(), ucAppointment.GetDayAvailabilityInput{
		BarbershopID: barbershopID,
		Date:         date,
		BarberID:     barberID,
	})
	if err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, summary)
}
