package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the aggregation
// pipeline and dataset cache.
type Metrics struct {
	RowsLoaded     prometheus.Counter
	RowsDropped    prometheus.Counter
	DatasetsLoaded prometheus.Counter

	// Dataset cache lookups, labelled result={hit,miss}.
	CacheLookups *prometheus.CounterVec

	// Query metrics, labelled by metric code and scope kind.
	Queries       *prometheus.CounterVec
	EmptyResults  prometheus.Counter
	QueryDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.DatasetsLoaded,
		m.CacheLookups,
		m.Queries,
		m.EmptyResults,
		m.QueryDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_norms",
			Name:      "rows_loaded_total",
			Help:      "Total canonical records produced by the normalizer.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_norms",
			Name:      "rows_dropped_total",
			Help:      "Total input rows dropped for unparseable dates or months.",
		}),
		DatasetsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_norms",
			Name:      "datasets_loaded_total",
			Help:      "Total dataset loads that missed the cache and parsed a file.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_norms",
			Name:      "dataset_cache_lookups_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		Queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_norms",
			Name:      "queries_total",
			Help:      "Aggregation queries by metric code and scope kind.",
		}, []string{"metric", "scope"}),
		EmptyResults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_norms",
			Name:      "empty_results_total",
			Help:      "Queries that yielded zero station summaries.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_norms",
			Name:      "query_duration_seconds",
			Help:      "Duration of a complete filter-aggregate-color evaluation.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}
