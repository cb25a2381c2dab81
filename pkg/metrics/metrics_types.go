package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Ranking run metrics
	RunsTotal        *prometheus.CounterVec
	RunDuration      *prometheus.HistogramVec
	PhaseDuration    *prometheus.HistogramVec
	IterationsRun    prometheus.Histogram
	ConvergedTotal   prometheus.Counter
	LastRunTimestamp prometheus.Gauge

	// Graph metrics for the most recent run
	GraphNodes     prometheus.Gauge
	GraphEdges     prometheus.Gauge
	GraphSelfLoops prometheus.Gauge

	// Input metrics
	RecordsTotal *prometheus.CounterVec
	InputBytes   *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	OutcomeAccepted = "accepted"
	OutcomeSkipped  = "skipped"
)
