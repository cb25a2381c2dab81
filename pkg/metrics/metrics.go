package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "retweet_hits"

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initRunMetrics()
	r.initGraphMetrics()
	r.initInputMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordRun records a finished ranking run for the given engine
func (r *Registry) RecordRun(engine, status string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(engine, status).Inc()
	r.RunDuration.WithLabelValues(engine).Observe(duration.Seconds())
	if status == StatusSuccess {
		r.LastRunTimestamp.SetToCurrentTime()
	}
}

// RecordPhase records how long one pipeline phase took
func (r *Registry) RecordPhase(phase string, duration time.Duration) {
	r.PhaseDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// RecordIterations records the iteration count of a HITS computation. An
// empty graph converges without iterating and is not counted as converged.
func (r *Registry) RecordIterations(iterations int, converged bool) {
	r.IterationsRun.Observe(float64(iterations))
	if converged && iterations > 0 {
		r.ConvergedTotal.Inc()
	}
}

// UpdateGraph sets the size gauges for the most recent graph
func (r *Registry) UpdateGraph(nodes, edges, selfLoops int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphSelfLoops.Set(float64(selfLoops))
}

// RecordRecords counts input records from a source
func (r *Registry) RecordRecords(source string, accepted, skipped int) {
	r.RecordsTotal.WithLabelValues(source, OutcomeAccepted).Add(float64(accepted))
	r.RecordsTotal.WithLabelValues(source, OutcomeSkipped).Add(float64(skipped))
}

// RecordInputBytes counts raw bytes read from a source
func (r *Registry) RecordInputBytes(source string, n int64) {
	r.InputBytes.WithLabelValues(source).Add(float64(n))
}
