package descent

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains Prometheus collectors for optimizer runs.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	runs         *prometheus.CounterVec
	cycles       prometheus.Counter
	objective    prometheus.Gauge
	gradSum      prometheus.Gauge
	partialNodes *prometheus.HistogramVec
}

// NewMetrics creates the optimizer collectors and registers them on reg.
// If reg is nil, a fresh registry is used.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "descent",
				Name:      "runs_total",
				Help:      "Total number of optimizer runs by outcome",
			},
			[]string{"status"},
		),
		cycles: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "descent",
				Name:      "cycles_total",
				Help:      "Total number of descent cycles evaluated",
			},
		),
		objective: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "descent",
				Name:      "objective_value",
				Help:      "Objective value at the most recent cycle",
			},
		),
		gradSum: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "descent",
				Name:      "gradient_sum",
				Help:      "Sum of partial derivatives at the most recent cycle",
			},
		),
		partialNodes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "descent",
				Name:      "partial_nodes",
				Help:      "Node count of each partial derivative before and after reduction",
				Buckets:   []float64{1, 3, 5, 10, 20, 50, 100, 500},
			},
			[]string{"stage"},
		),
	}

	reg.MustRegister(m.runs, m.cycles, m.objective, m.gradSum, m.partialNodes)
	return m
}

func (m *Metrics) recordPartial(raw, reduced int) {
	if m == nil {
		return
	}
	m.partialNodes.WithLabelValues("raw").Observe(float64(raw))
	m.partialNodes.WithLabelValues("reduced").Observe(float64(reduced))
}

func (m *Metrics) recordCycle(value, gradSum float64) {
	if m == nil {
		return
	}
	m.cycles.Inc()
	m.objective.Set(value)
	m.gradSum.Set(gradSum)
}

func (m *Metrics) recordRun(status string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
}
