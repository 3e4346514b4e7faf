package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/validators"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

// Cada item é um intervalo de expediente; o mesmo weekday pode aparecer
// mais de uma vez (manhã e tarde separadas pela pausa do almoço)
type WorkingIntervalConfig struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    bool   `json:"active"`
}

type WorkingHoursUpdateRequest struct {
	Intervals []WorkingIntervalConfig `json:"intervals" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	httpresp.List(c, hours)
}

// Update substitui o expediente inteiro do barbeiro pelos intervalos
// enviados
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextUserID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	for _, iv := range req.Intervals {
		if !validators.IsValidWeekday(iv.Weekday) {
			httperr.BadRequest(c, "invalid_weekday", "Weekday fora de 0..6.")
			return
		}
		if !validators.IsValidClockRange(iv.StartTime, iv.EndTime) {
			httperr.BadRequest(c, "invalid_interval", "Intervalo de horário inválido.")
			return
		}
	}

	var toCreate []models.WorkingHours
	for _, iv := range req.Intervals {
		toCreate = append(toCreate, models.WorkingHours{
			BarberID:  barberID,
			Weekday:   iv.Weekday,
			StartTime: iv.StartTime,
			EndTime:   iv.EndTime,
			Active:    iv.Active,
		})
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ?", barberID).
			Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_working_hours", "Erro ao salvar expediente.")
		return
	}

	httpresp.List(c, toCreate)
}
