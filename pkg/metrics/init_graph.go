package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Nodes in the most recently built retweet graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Distinct weighted edges in the most recently built retweet graph",
		},
	)

	r.GraphSelfLoops = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "graph_self_loops_dropped",
			Help:      "Self-retweets dropped while building the most recent graph",
		},
	)
}
