// Package metrics exposes pipeline counters on a dedicated prometheus registry.
// All methods are safe on a nil *Metrics, so components can run without metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "topicwatch"

// Metrics holds pipeline collectors
type Metrics struct {
	registry      *prometheus.Registry
	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	judgeCalls    *prometheus.CounterVec
	items         *prometheus.CounterVec
	gate          *prometheus.CounterVec
	reports       *prometheus.CounterVec
}

// New makes metrics registered on a fresh registry, with go and process collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "cycles_total", Help: "Topic cycles by outcome",
		}, []string{"outcome"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "cycle_duration_seconds", Help: "Duration of one topic cycle",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		judgeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "judge_calls_total", Help: "Judge completions by result kind",
		}, []string{"kind"}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "items_total", Help: "Items seen per pipeline stage",
		}, []string{"stage"}),
		gate: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "gate_decisions_total", Help: "Threshold gate decisions",
		}, []string{"decision"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "reports_total", Help: "Reports by delivery status",
		}, []string{"status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.cycles, m.cycleDuration, m.judgeCalls, m.items, m.gate, m.reports,
	)
	return m
}

// Handler returns the exposition handler for the registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// CycleDone records a finished topic cycle
func (m *Metrics) CycleDone(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.cycles.WithLabelValues(outcome).Inc()
	m.cycleDuration.Observe(d.Seconds())
}

// JudgeCall records one judge completion by its result kind
func (m *Metrics) JudgeCall(kind string) {
	if m == nil {
		return
	}
	m.judgeCalls.WithLabelValues(kind).Inc()
}

// Items adds n items to the stage counter
func (m *Metrics) Items(stage string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.items.WithLabelValues(stage).Add(float64(n))
}

// GateDecision records a gate decision
func (m *Metrics) GateDecision(decision string) {
	if m == nil {
		return
	}
	m.gate.WithLabelValues(decision).Inc()
}

// Report records a report delivery attempt, status is "sent" or "failed"
func (m *Metrics) Report(status string) {
	if m == nil {
		return
	}
	m.reports.WithLabelValues(status).Inc()
}
