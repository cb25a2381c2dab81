package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initRunMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of ranking runs",
		},
		[]string{"engine", "status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "End-to-end ranking run duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 60.0},
		},
		[]string{"engine"},
	)

	r.PhaseDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of a pipeline phase (load, build, score, select) in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"phase"},
	)

	r.IterationsRun = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "hits_iterations",
			Help:      "Number of power iterations performed per HITS computation",
			Buckets:   []float64{1, 5, 10, 20, 50, 100},
		},
	)

	r.ConvergedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hits_converged_total",
			Help:      "HITS computations that stopped early on the tolerance",
		},
	)

	r.LastRunTimestamp = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		},
	)
}
