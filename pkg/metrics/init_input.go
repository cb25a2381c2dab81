package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initInputMetrics() {
	r.RecordsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Input records by source and outcome (accepted, skipped)",
		},
		[]string{"source", "outcome"},
	)

	r.InputBytes = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_bytes_total",
			Help:      "Raw bytes read from input sources",
		},
		[]string{"source"},
	)
}
