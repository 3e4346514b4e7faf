package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Repository interface {
	// Transact executa fn dentro de uma transação; o Repository
	// recebido opera sobre a mesma transação
	Transact(ctx context.Context, fn func(r Repository) error) error

	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	GetBarbershopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Barbershop, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.User, error)

	ListActiveBarbers(
		ctx context.Context,
		barbershopID uint,
	) ([]models.User, error)

	SetBarberActive(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		active bool,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ListConflicts retorna agendamentos não terminais do barbeiro que
	// sobrepõem [start, end), travados com FOR UPDATE quando em transação
	ListConflicts(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByReference(
		ctx context.Context,
		reference string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Working hours --------
	ListWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WorkingHours, error)

	// -------- Availability --------
	ListDayAppointments(
		ctx context.Context,
		barberID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- No-show sweep --------
	// Agendamentos em scheduled/confirmed com end_time <= cutoff
	ListNoShowCandidates(
		ctx context.Context,
		cutoff time.Time,
		limit int,
	) ([]models.Appointment, error)

	// MarkNoShow faz compare-and-set: só escreve se o status atual
	// ainda for fromStatus; retorna false quando outra transição venceu
	MarkNoShow(
		ctx context.Context,
		appointmentID uint,
		fromStatus string,
		now time.Time,
	) (bool, error)

	// -------- Invariantes --------
	CountNonTerminalByBarber(
		ctx context.Context,
		barberID uint,
	) (int64, error)
}
