package schedule

import "time"

// ===============================
// Disponibilidade do dia
// ===============================

type DayStatus string

const (
	DayFree    DayStatus = "FREE"
	DayPartial DayStatus = "PARTIALLY_AVAILABLE"
	DayNoSlots DayStatus = "NO_AVAILABILITY"
)

// Fração de capacidade livre a partir da qual o dia conta como FREE
const DefaultFreeThreshold = 1.0

// BarberDay é a entrada por barbeiro: turnos do weekday + horários
// ocupados por agendamentos não terminais
type BarberDay struct {
	BarberID uint
	Shifts   []Interval
	Busy     []Interval
}

type BarberAvailability struct {
	BarberID uint       `json:"barber_id"`
	Free     []Interval `json:"free"`
}

type DaySummary struct {
	Status  DayStatus            `json:"status"`
	Barbers []BarberAvailability `json:"barbers"`
}

// ComputeDay deriva o tempo livre por barbeiro e o status agregado do
// dia. Nunca é persistido: sempre recalculado sobre os dados atuais.
//
// freeThreshold em [0,1]: fração de capacidade livre a partir da qual
// o dia conta como FREE (1.0 = igualdade exata, sem nenhum agendamento).
// grid > 0 encolhe os intervalos reportados para a grade de slots; o
// status agregado usa o tempo livre real, antes do arredondamento.
func ComputeDay(days []BarberDay, freeThreshold float64, grid time.Duration) DaySummary {
	if freeThreshold <= 0 || freeThreshold > 1 {
		freeThreshold = DefaultFreeThreshold
	}

	var (
		totalFree     time.Duration
		totalCapacity time.Duration
		barbers       []BarberAvailability
	)

	for _, day := range days {
		var free []Interval
		for _, shift := range Merge(day.Shifts) {
			free = append(free, Subtract(shift, day.Busy)...)
		}

		totalCapacity += TotalDuration(Merge(day.Shifts))
		totalFree += TotalDuration(free)

		if grid > 0 {
			free = SnapToGrid(free, grid)
		}
		barbers = append(barbers, BarberAvailability{
			BarberID: day.BarberID,
			Free:     free,
		})
	}

	return DaySummary{
		Status:  dayStatus(totalFree, totalCapacity, freeThreshold),
		Barbers: barbers,
	}
}

func dayStatus(free, capacity time.Duration, threshold float64) DayStatus {
	if free <= 0 || capacity <= 0 {
		return DayNoSlots
	}
	if float64(free) >= threshold*float64(capacity) {
		return DayFree
	}
	return DayPartial
}
