package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

const (
	testShopID          = uint(1)
	testBarberID        = uint(10)
	testOtherBarberID   = uint(11)
	testInactiveBarber  = uint(12)
	testServiceID       = uint(20)
	testInactiveService = uint(21)
)

// Cenário padrão: uma barbearia em UTC, dois barbeiros ativos e um
// inativo, expediente 09:00–18:00 todos os dias
func newFixture() (*fakeRepo, *lock.Keyed, *config.Config) {
	repo := newFakeRepo()

	repo.shops[testShopID] = &models.Barbershop{
		ID:                testShopID,
		Name:              "Navalha de Ouro",
		Slug:              "navalha-de-ouro",
		Timezone:          "UTC",
		MinAdvanceMinutes: 120,
	}

	repo.barbers[testBarberID] = &models.User{
		ID: testBarberID, BarbershopID: testShopID, Name: "Carlos", Active: true,
	}
	repo.barbers[testOtherBarberID] = &models.User{
		ID: testOtherBarberID, BarbershopID: testShopID, Name: "Rafael", Active: true,
	}
	repo.barbers[testInactiveBarber] = &models.User{
		ID: testInactiveBarber, BarbershopID: testShopID, Name: "Jorge", Active: false,
	}

	repo.services[testServiceID] = &models.Service{
		ID: testServiceID, BarbershopID: testShopID,
		Name: "Corte", DurationMin: 30, Price: 50, Active: true,
	}
	repo.services[testInactiveService] = &models.Service{
		ID: testInactiveService, BarbershopID: testShopID,
		Name: "Relaxamento", DurationMin: 60, Price: 120, Active: false,
	}

	for _, barberID := range []uint{testBarberID, testOtherBarberID, testInactiveBarber} {
		for wd := 0; wd < 7; wd++ {
			repo.hours = append(repo.hours, models.WorkingHours{
				BarberID: barberID, Weekday: wd,
				StartTime: "09:00", EndTime: "18:00", Active: true,
			})
		}
	}

	cfg := &config.Config{
		FreeThreshold:   1.0,
		SlotGranularity: 15 * time.Minute,
		NoShowGrace:     15 * time.Minute,
		SweepInterval:   time.Minute,
		LockTimeout:     500 * time.Millisecond,
		PayLater:        true,
	}

	return repo, lock.NewKeyed(), cfg
}

func createInput(date, clock string) CreateAppointmentInput {
	return CreateAppointmentInput{
		BarbershopID: testShopID,
		BarberID:     testBarberID,
		ClientName:   "João",
		ClientPhone:  "11999990000",
		ClientEmail:  "joao@example.com",
		ServiceID:    testServiceID,
		Date:         date,
		Time:         clock,
	}
}
