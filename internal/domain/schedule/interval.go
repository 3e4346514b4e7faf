package schedule

import (
	"sort"
	"time"
)

// ===============================
// Intervalos semiabertos [Start, End)
// ===============================

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

func (i Interval) Empty() bool {
	return !i.End.After(i.Start)
}

func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// Overlaps: semiaberto — intervalos encostados não conflitam
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// Clamp recorta i para dentro de bounds; retorna false se nada sobra
func Clamp(i, bounds Interval) (Interval, bool) {
	if i.Start.Before(bounds.Start) {
		i.Start = bounds.Start
	}
	if i.End.After(bounds.End) {
		i.End = bounds.End
	}
	if i.Empty() {
		return Interval{}, false
	}
	return i, true
}

// Merge ordena e funde intervalos sobrepostos ou encostados
func Merge(in []Interval) []Interval {
	if len(in) == 0 {
		return nil
	}

	sorted := make([]Interval, 0, len(in))
	for _, i := range in {
		if !i.Empty() {
			sorted = append(sorted, i)
		}
	}
	if len(sorted) == 0 {
		return nil
	}

	sort.Slice(sorted, func(a, b int) bool {
		return sorted[a].Start.Before(sorted[b].Start)
	})

	out := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &out[len(out)-1]
		if !cur.Start.After(last.End) {
			if cur.End.After(last.End) {
				last.End = cur.End
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}

// Subtract devolve os intervalos livres dentro de shift após remover
// o tempo ocupado (ocupados são fundidos antes da subtração)
func Subtract(shift Interval, busy []Interval) []Interval {
	if shift.Empty() {
		return nil
	}

	var clipped []Interval
	for _, b := range Merge(busy) {
		if c, ok := Clamp(b, shift); ok {
			clipped = append(clipped, c)
		}
	}
	if len(clipped) == 0 {
		return []Interval{shift}
	}

	var free []Interval
	cursor := shift.Start
	for _, b := range clipped {
		if b.Start.After(cursor) {
			free = append(free, Interval{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(shift.End) {
		free = append(free, Interval{Start: cursor, End: shift.End})
	}
	return free
}

// Union funde o tempo livre de dois conjuntos (visão da barbearia inteira)
func Union(a, b []Interval) []Interval {
	merged := make([]Interval, 0, len(a)+len(b))
	merged = append(merged, a...)
	merged = append(merged, b...)
	return Merge(merged)
}

// SnapToGrid arredonda para a grade de slots, sempre encolhendo:
// início sobe para o próximo slot, fim desce para o slot anterior.
// A grade é ancorada na meia-noite do dia do intervalo (intervalos
// nunca cruzam dias).
func SnapToGrid(in []Interval, slot time.Duration) []Interval {
	if slot <= 0 {
		return in
	}

	var out []Interval
	for _, i := range in {
		if i.Empty() {
			continue
		}
		y, m, d := i.Start.Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, i.Start.Location())

		startOff := i.Start.Sub(midnight)
		endOff := i.End.Sub(midnight)

		snappedStart := midnight.Add(ceilDuration(startOff, slot))
		snappedEnd := midnight.Add(floorDuration(endOff, slot))

		if snappedEnd.After(snappedStart) {
			out = append(out, Interval{Start: snappedStart, End: snappedEnd})
		}
	}
	return out
}

func ceilDuration(d, step time.Duration) time.Duration {
	if rem := d % step; rem != 0 {
		return d + step - rem
	}
	return d
}

func floorDuration(d, step time.Duration) time.Duration {
	return d - d%step
}

func TotalDuration(in []Interval) time.Duration {
	var total time.Duration
	for _, i := range in {
		total += i.Duration()
	}
	return total
}
