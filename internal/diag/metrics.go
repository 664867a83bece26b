package diag

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the extraction data-quality counters exposed on /metrics.
type Metrics struct {
	EdgesSkipped    *prometheus.CounterVec
	CyclesTruncated prometheus.Counter
	DepthExceeded   prometheus.Counter
	EmptyScopes     prometheus.Counter
}

// NewMetrics registers the counters with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EdgesSkipped: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "texo_relationships_skipped_total",
			Help: "Relationships dropped during edge collection, by reason.",
		}, []string{"reason"}),
		CyclesTruncated: factory.NewCounter(prometheus.CounterOpts{
			Name: "texo_cycles_truncated_total",
			Help: "Nodes skipped because they were already on the descent path.",
		}),
		DepthExceeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "texo_formula_depth_exceeded_total",
			Help: "Formula descents stopped at the maximum depth.",
		}),
		EmptyScopes: factory.NewCounter(prometheus.CounterOpts{
			Name: "texo_empty_scopes_total",
			Help: "Arc-role or link-role queries that returned no relationships.",
		}),
	}
}
