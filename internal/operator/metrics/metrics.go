package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the operator engine.
type Metrics struct {
	// MNO/MVNO match transitions by kind ("mno", "mvno") and outcome ("matched", "cleared")
	Resolutions *prometheus.CounterVec

	// MVNO filters that failed closed, by reason ("no_value", "compile", "mismatch")
	FilterFailures *prometheus.CounterVec

	// Change notifications enqueued on the dispatcher
	NotificationsEnqueued prometheus.Counter

	// Operators in the currently loaded database
	DatabaseOperators prometheus.Gauge

	// Database loads by result ("success", "failure")
	DatabaseLoads *prometheus.CounterVec
}

// New creates the engine metrics and registers them with reg. A nil reg
// registers with the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opinfo_resolutions_total",
			Help: "Operator match transitions by kind and outcome",
		}, []string{"kind", "outcome"}),

		FilterFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opinfo_mvno_filter_failures_total",
			Help: "MVNO filters that did not pass, by reason",
		}, []string{"reason"}),

		NotificationsEnqueued: factory.NewCounter(prometheus.CounterOpts{
			Name: "opinfo_notifications_enqueued_total",
			Help: "Operator change notifications posted to the dispatcher",
		}),

		DatabaseOperators: factory.NewGauge(prometheus.GaugeOpts{
			Name: "opinfo_database_operators",
			Help: "Number of MNO records in the loaded operator database",
		}),

		DatabaseLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "opinfo_database_loads_total",
			Help: "Operator database loads by result",
		}, []string{"result"}),
	}
}

// IncrementResolution records an MNO or MVNO match transition.
func (m *Metrics) IncrementResolution(kind string, matched bool) {
	if m == nil {
		return
	}
	outcome := "cleared"
	if matched {
		outcome = "matched"
	}
	m.Resolutions.WithLabelValues(kind, outcome).Inc()
}

// IncrementFilterFailure records a filter that failed closed.
func (m *Metrics) IncrementFilterFailure(reason string) {
	if m != nil {
		m.FilterFailures.WithLabelValues(reason).Inc()
	}
}

// IncrementNotifications records an enqueued change notification.
func (m *Metrics) IncrementNotifications() {
	if m != nil {
		m.NotificationsEnqueued.Inc()
	}
}

// RecordLoad records a database load attempt and, on success, its size.
func (m *Metrics) RecordLoad(ok bool, operators int) {
	if m == nil {
		return
	}
	if !ok {
		m.DatabaseLoads.WithLabelValues("failure").Inc()
		return
	}
	m.DatabaseLoads.WithLabelValues("success").Inc()
	m.DatabaseOperators.Set(float64(operators))
}
