package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters for the lead-intake pipeline.
type IntakeMetrics struct {
	acceptedTotal  prometheus.Counter
	rejectedTotal  *prometheus.CounterVec
	notifyFailures prometheus.Counter
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		acceptedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mashkanta",
			Subsystem: "leads",
			Name:      "accepted_total",
			Help:      "Leads accepted and durably stored",
		}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mashkanta",
			Subsystem: "leads",
			Name:      "rejected_total",
			Help:      "Submissions rejected, by reason",
		}, []string{"reason"}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mashkanta",
			Subsystem: "leads",
			Name:      "notify_failures_total",
			Help:      "Owner notifications that failed to send",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.acceptedTotal, m.rejectedTotal, m.notifyFailures)
	return m
}

func (m *IntakeMetrics) ObserveAccepted() {
	if m == nil {
		return
	}
	m.acceptedTotal.Inc()
}

// ObserveRejected counts a rejection. Reasons: origin, rate_limit,
// bad_json, validation, honeypot, storage.
func (m *IntakeMetrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.rejectedTotal.WithLabelValues(reason).Inc()
}

func (m *IntakeMetrics) ObserveNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}
