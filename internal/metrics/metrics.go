package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negócio expostos em /metrics.
// Todos os métodos aceitam receiver nil (métricas desligadas).
type Metrics struct {
	bookingsCreated prometheus.Counter
	slotConflicts   prometheus.Counter
	noShowsSwept    prometheus.Counter
	lockTimeouts    prometheus.Counter
	cancellations   prometheus.Counter
}

func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	counter := func(name, help string) prometheus.Counter {
		return promauto.NewCounter(prometheus.CounterOpts{
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}

	return &Metrics{
		bookingsCreated: counter("appointments_created_total", "Appointments successfully created"),
		slotConflicts:   counter("appointment_slot_conflicts_total", "Booking attempts rejected by slot conflict"),
		noShowsSwept:    counter("appointments_no_show_total", "Appointments marked no_show by the sweeper"),
		lockTimeouts:    counter("barber_lock_timeouts_total", "Write requests that timed out waiting for a barber lock"),
		cancellations:   counter("appointments_cancelled_total", "Appointments cancelled"),
	}
}

func (m *Metrics) BookingCreated() {
	if m != nil {
		m.bookingsCreated.Inc()
	}
}

func (m *Metrics) SlotConflict() {
	if m != nil {
		m.slotConflicts.Inc()
	}
}

func (m *Metrics) NoShowSwept() {
	if m != nil {
		m.noShowsSwept.Inc()
	}
}

func (m *Metrics) LockTimeout() {
	if m != nil {
		m.lockTimeouts.Inc()
	}
}

func (m *Metrics) Cancelled() {
	if m != nil {
		m.cancellations.Inc()
	}
}
