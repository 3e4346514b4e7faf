package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/cache"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/payment"
	ucAppointment "github.com/BruksfildServices01/barber-agenda/internal/usecase/appointment"
)

type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Config  *config.Config
	Log     *zap.SugaredLogger
	Locks   *lock.Keyed
	Metrics *metrics.Metrics
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	db := deps.DB
	cfg := deps.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger(deps.Log))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditDispatcher := audit.NewDispatcher(audit.New(db), deps.Log)
	availabilityCache := cache.NewAvailability(deps.Redis, deps.Log)

	paymentStore := payment.NewStore(db)

	var paymentVerifier payment.Verifier
	if cfg.MPAccessToken != "" {
		verifier, err := payment.NewMercadoPagoVerifier(cfg.MPAccessToken)
		if err != nil {
			deps.Log.Errorw("mercadopago setup failed", "err", err)
		} else {
			paymentVerifier = verifier
		}
	}

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(
		appointmentRepo, deps.Locks, auditDispatcher,
		availabilityCache, deps.Metrics, cfg,
	)
	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo, deps.Locks, auditDispatcher,
		availabilityCache, deps.Metrics, cfg,
	)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo, deps.Locks, auditDispatcher,
		availabilityCache, deps.Metrics, cfg,
	)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher)
	startUC := ucAppointment.NewStartAppointment(appointmentRepo, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo, paymentStore, auditDispatcher, cfg,
	)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)
	availabilityUC := ucAppointment.NewGetDayAvailability(
		appointmentRepo, availabilityCache, cfg,
	)
	deactivateBarberUC := ucAppointment.NewDeactivateBarber(
		appointmentRepo, deps.Locks, auditDispatcher, deps.Metrics, cfg,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createUC, cancelUC, rescheduleUC,
		confirmUC, startUC, completeUC, listUC,
	)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)

	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db, deactivateBarberUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, createUC, cancelUC, availabilityUC)
	webhookHandler := handlers.NewPaymentWebhookHandler(db, paymentVerifier, paymentStore, deps.Log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (por slug, sem login)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/:slug/appointments/:reference", publicHandler.GetAppointment)
			publicAPI.PATCH("/:slug/appointments/:reference/cancel", publicHandler.CancelAppointment)
		}

		// ------------------------------
		// WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/mercadopago", webhookHandler.Receive)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/barbershop", meHandler.GetBarbershop)
			secured.PATCH("/me/barbershop", meHandler.UpdateBarbershop)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/barbers", barberHandler.List)
			secured.POST("/me/barbers", barberHandler.Create)
			secured.PATCH("/me/barbers/:id/deactivate", barberHandler.Deactivate)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/availability", availabilityHandler.Get)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/start", appointmentHandler.Start)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
		}
	}
}
