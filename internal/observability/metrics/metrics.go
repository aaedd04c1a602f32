package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters for the appointment-scheduling flow.
type SchedulingMetrics struct {
	appointmentsTotal *prometheus.CounterVec
	slotConflicts     prometheus.Counter
	remindersTotal    *prometheus.CounterVec
	ticketsTotal      *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "juridia",
			Subsystem: "scheduling",
			Name:      "appointments_total",
			Help:      "Total appointment creation attempts",
		}, []string{"status"}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "juridia",
			Subsystem: "scheduling",
			Name:      "slot_conflicts_total",
			Help:      "Concurrent bookings rejected by the slot uniqueness guard",
		}),
		remindersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "juridia",
			Subsystem: "scheduling",
			Name:      "reminders_total",
			Help:      "Total reminder task registrations",
		}, []string{"status"}),
		ticketsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "juridia",
			Subsystem: "tickets",
			Name:      "created_total",
			Help:      "Total consultation ticket creation attempts",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.appointmentsTotal, m.slotConflicts, m.remindersTotal, m.ticketsTotal)
	return m
}

func (m *SchedulingMetrics) ObserveAppointment(status string) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(status).Inc()
}

func (m *SchedulingMetrics) ObserveSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}

func (m *SchedulingMetrics) ObserveReminder(status string) {
	if m == nil {
		return
	}
	m.remindersTotal.WithLabelValues(status).Inc()
}

func (m *SchedulingMetrics) ObserveTicket(status string) {
	if m == nil {
		return
	}
	m.ticketsTotal.WithLabelValues(status).Inc()
}
