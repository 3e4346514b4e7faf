package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// Conversão expediente/agendamentos → intervalos
// ======================================================

// shiftsFor materializa os intervalos de expediente na data informada
// (horários "15:04" viram instantes no timezone da data)
func shiftsFor(date time.Time, hours []models.WorkingHours) []schedule.Interval {
	loc := date.Location()

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	var shifts []schedule.Interval
	for _, wh := range hours {
		if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
			continue
		}
		start, ok1 := parseHM(wh.StartTime)
		end, ok2 := parseHM(wh.EndTime)
		if !ok1 || !ok2 || !end.After(start) {
			continue
		}
		shifts = append(shifts, schedule.Interval{Start: start, End: end})
	}
	return schedule.Merge(shifts)
}

func busyFrom(apps []models.Appointment) []schedule.Interval {
	var busy []schedule.Interval
	for _, ap := range apps {
		busy = append(busy, schedule.Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return busy
}

// withinShifts: o intervalo precisa caber inteiro em um único turno
func withinShifts(iv schedule.Interval, shifts []schedule.Interval) bool {
	for _, shift := range shifts {
		if shift.Contains(iv) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}
