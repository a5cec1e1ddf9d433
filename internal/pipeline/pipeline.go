// Package pipeline orchestrates one query evaluation: scope filtering,
// per-station aggregation, color mapping, and presentation formatting.
// Each user parameter change triggers one full synchronous recomputation
// over the cached canonical dataset.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/couchcryptid/climate-norms/internal/domain"
	"github.com/couchcryptid/climate-norms/internal/observability"
)

// ErrMetricUnavailable indicates a query for a metric the dataset does not
// carry (or one outside the catalog entirely).
var ErrMetricUnavailable = errors.New("metric not available in dataset")

// QueryParams selects what to aggregate: one metric code and one time scope.
type QueryParams struct {
	Metric string
	Scope  domain.Scope
}

// Legend carries everything the presentation layer needs to render the
// color scale next to the map.
type Legend struct {
	Metric     string             `json:"metric"`
	MetricName string             `json:"metric_name"`
	Unit       string             `json:"unit"`
	Domain     domain.ValueDomain `json:"domain"`
	Gradient   string             `json:"gradient"`
}

// Result is the structured data handed to the presentation adapter for one
// query: colored, formatted station summaries ranked by descending mean,
// plus legend and labelling data. Empty marks the valid "no data for this
// selection" state, distinct from a load failure.
type Result struct {
	Metric      string                  `json:"metric"`
	Description string                  `json:"description"`
	DateRange   string                  `json:"date_range"`
	Stations    int                     `json:"stations"`
	Empty       bool                    `json:"empty"`
	Summaries   []domain.StationSummary `json:"summaries"`
	Legend      Legend                  `json:"legend"`
}

// Pipeline evaluates queries against normalized datasets.
type Pipeline struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline with the given observability.
func New(logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{logger: logger, metrics: metrics}
}

// Query runs filter -> aggregate -> color -> format over the dataset.
// It never mutates the dataset; all derived slices are freshly allocated.
// An empty result is returned as data, not an error.
func (p *Pipeline) Query(ds *domain.Dataset, q QueryParams) (Result, error) {
	metric, ok := domain.LookupMetric(q.Metric)
	if !ok || !ds.HasMetric(q.Metric) {
		return Result{}, fmt.Errorf("%q: %w", q.Metric, ErrMetricUnavailable)
	}

	start := time.Now()
	p.metrics.Queries.WithLabelValues(metric.Code, q.Scope.Kind.String()).Inc()

	scoped := domain.FilterScope(ds.Records, q.Scope)
	summaries := domain.Aggregate(scoped, metric.Code)
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Mean > summaries[j].Mean
	})
	dom := domain.ApplyColors(summaries, metric)

	result := Result{
		Metric:      metric.Code,
		Description: q.Scope.Description(),
		DateRange:   domain.DateRangeLabel(scoped),
		Stations:    len(summaries),
		Empty:       len(summaries) == 0,
		Summaries:   summaries,
		Legend: Legend{
			Metric:     metric.Code,
			MetricName: metric.DisplayName,
			Unit:       metric.Unit,
			Domain:     dom,
			Gradient:   domain.PaletteFor(metric.Class).Gradient(),
		},
	}

	p.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	if result.Empty {
		p.metrics.EmptyResults.Inc()
		p.logger.Debug("query returned no data",
			"metric", metric.Code, "scope", q.Scope.Description())
	}

	return result, nil
}
