package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestIntakeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)

	m.ObserveAccepted()
	m.ObserveAccepted()
	m.ObserveRejected("rate_limit")
	m.ObserveRejected("honeypot")
	m.ObserveRejected("honeypot")
	m.ObserveNotifyFailure()

	if got := testutil.ToFloat64(m.acceptedTotal); got != 2 {
		t.Errorf("accepted = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.rejectedTotal.WithLabelValues("honeypot")); got != 2 {
		t.Errorf("rejected honeypot = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.notifyFailures); got != 1 {
		t.Errorf("notify failures = %v, want 1", got)
	}
}

func TestNilReceiverSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveAccepted()
	m.ObserveRejected("origin")
	m.ObserveNotifyFailure()
}
