package appointment

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Repositório em memória para os testes de use case. Transact serializa
// transações com um mutex próprio, imitando o isolamento do banco.
type fakeRepo struct {
	mu   sync.Mutex
	txMu sync.Mutex

	shops    map[uint]*models.Barbershop
	barbers  map[uint]*models.User
	services map[uint]*models.Service
	clients  []*models.Client
	hours    []models.WorkingHours

	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shops:        make(map[uint]*models.Barbershop),
		barbers:      make(map[uint]*models.User),
		services:     make(map[uint]*models.Service),
		appointments: make(map[uint]*models.Appointment),
	}
}

func (f *fakeRepo) Transact(ctx context.Context, fn func(r domain.Repository) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(f)
}

func (f *fakeRepo) GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	shop, ok := f.shops[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := *shop
	return &cp, nil
}

func (f *fakeRepo) GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, shop := range f.shops {
		if shop.Slug == slug {
			cp := *shop
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	barber, ok := f.barbers[barberID]
	if !ok || barber.BarbershopID != barbershopID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := *barber
	return &cp, nil
}

func (f *fakeRepo) ListActiveBarbers(ctx context.Context, barbershopID uint) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.User
	for _, barber := range f.barbers {
		if barber.BarbershopID == barbershopID && barber.Active {
			out = append(out, *barber)
		}
	}
	return out, nil
}

func (f *fakeRepo) SetBarberActive(ctx context.Context, barbershopID, barberID uint, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	barber, ok := f.barbers[barberID]
	if !ok || barber.BarbershopID != barbershopID {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	barber.Active = active
	return nil
}

func (f *fakeRepo) GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	service, ok := f.services[serviceID]
	if !ok || service.BarbershopID != barbershopID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := *service
	return &cp, nil
}

func (f *fakeRepo) GetOrCreateClient(
	ctx context.Context,
	barbershopID uint,
	name, phone, email string,
) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, client := range f.clients {
		if client.BarbershopID == barbershopID && client.Phone == phone {
			cp := *client
			return &cp, nil
		}
	}

	f.nextID++
	client := &models.Client{
		ID:           f.nextID,
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}
	f.clients = append(f.clients, client)

	cp := *client
	return &cp, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	ap.ID = f.nextID
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListConflicts(
	ctx context.Context,
	barberID uint,
	start, end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || ap.ID == excludeID {
			continue
		}
		if !nonTerminal(ap.Status) {
			continue
		}
		if ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepo) GetAppointmentByReference(ctx context.Context, ref string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ap := range f.appointments {
		if ap.Reference == ref {
			cp := *ap
			return &cp, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeNotFound)
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.appointments[ap.ID]; !ok {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) ListWorkingHours(ctx context.Context, barberID uint, weekday int) ([]models.WorkingHours, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.WorkingHours
	for _, wh := range f.hours {
		if wh.BarberID == barberID && wh.Weekday == weekday && wh.Active {
			out = append(out, wh)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListDayAppointments(
	ctx context.Context,
	barberID uint,
	dayStart, dayEnd time.Time,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID || !nonTerminal(ap.Status) {
			continue
		}
		if !ap.StartTime.Before(dayStart) && ap.StartTime.Before(dayEnd) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start, end time.Time,
) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListNoShowCandidates(ctx context.Context, cutoff time.Time, limit int) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Status != string(domain.StatusScheduled) && ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		if !ap.EndTime.After(cutoff) {
			out = append(out, *ap)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkNoShow(ctx context.Context, id uint, fromStatus string, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap, ok := f.appointments[id]
	if !ok || ap.Status != fromStatus {
		return false, nil
	}
	ap.Status = string(domain.StatusNoShow)
	ap.NoShowAt = &now
	return true, nil
}

func (f *fakeRepo) CountNonTerminalByBarber(ctx context.Context, barberID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, ap := range f.appointments {
		if ap.BarberID == barberID && nonTerminal(ap.Status) {
			count++
		}
	}
	return count, nil
}

func nonTerminal(status string) bool {
	return !domain.Status(status).Terminal()
}

var _ domain.Repository = (*fakeRepo)(nil)
