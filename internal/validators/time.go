package validators

import "time"

// Validação de entrada feita antes de qualquer lock (fail fast)

func IsValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func IsValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsValidClockRange exige início < fim no mesmo dia
func IsValidClockRange(start, end string) bool {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return false
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return false
	}
	return s.Before(e)
}

func IsValidWeekday(d int) bool {
	return d >= 0 && d <= 6
}
