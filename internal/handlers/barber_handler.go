package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

type BarberHandler struct {
	db           *gorm.DB
	deactivateUC *ucAppointment.DeactivateBarber
}

func NewBarberHandler(db *gorm.DB, deactivateUC *ucAppointment.DeactivateBarber) *BarberHandler {
	return &BarberHandler{db: db, deactivateUC: deactivateUC}
}

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

func (h *BarberHandler) List(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var barbers []models.User
	if err := h.db.
		Where("barbershop_id = ?", barbershopID).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	httpresp.List(c, barbers)
}

func (h *BarberHandler) Create(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	if role != "owner" {
		httperr.Unauthorized(c, "owner_only", "Apenas o dono pode cadastrar barbeiros.")
		return
	}

	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar senha.")
		return
	}

	barber := models.User{
		BarbershopID: barbershopID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "barber",
		Active:       true,
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Erro ao criar barbeiro.")
		return
	}

	httpresp.Created(c, barber)
}

// Deactivate recusa enquanto o barbeiro tiver agendamentos ativos
func (h *BarberHandler) Deactivate(c *gin.Context) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)
	if role != "owner" {
		httperr.Unauthorized(c, "owner_only", "Apenas o dono pode desativar barbeiros.")
		return
	}

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.deactivateUC.Execute(c.Request.Context(), barbershopID, id); err != nil {
		writeAppointmentError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deactivated": true})
}
