package pipeline_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-norms/internal/domain"
	"github.com/couchcryptid/climate-norms/internal/observability"
	"github.com/couchcryptid/climate-norms/internal/pipeline"
)

func testDataset() *domain.Dataset {
	return &domain.Dataset{
		Records: []domain.Observation{
			{StationID: "S1", StationName: "Downtown", Lat: 47.6, Lon: -122.33, Month: time.January, Season: domain.Winter, Values: map[string]float64{"PRCP": 1.0}},
			{StationID: "S1", StationName: "Downtown", Lat: 47.6, Lon: -122.33, Month: time.February, Season: domain.Winter, Values: map[string]float64{"PRCP": 2.0}},
			{StationID: "S1", StationName: "Downtown", Lat: 47.6, Lon: -122.33, Month: time.March, Season: domain.Spring, Values: map[string]float64{"PRCP": 3.0}},
			{StationID: "S2", StationName: "Hilltop", Lat: 47.52, Lon: -122.10, Month: time.January, Season: domain.Winter, Values: map[string]float64{"PRCP": 0.0}},
		},
		Metrics: []string{"PRCP"},
	}
}

func newTestPipeline() *pipeline.Pipeline {
	return pipeline.New(slog.Default(), observability.NewMetricsForTesting())
}

func TestQuery_AllTime(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Query(testDataset(), pipeline.QueryParams{
		Metric: "PRCP",
		Scope:  domain.Scope{Kind: domain.AllTime},
	})
	require.NoError(t, err)

	assert.False(t, result.Empty)
	assert.Equal(t, "All Time Average", result.Description)
	assert.Equal(t, 2, result.Stations)

	// Ranked by descending mean for the top-stations table.
	require.Len(t, result.Summaries, 2)
	assert.Equal(t, "S1", result.Summaries[0].StationID)
	assert.Equal(t, 2.0, result.Summaries[0].Mean)
	assert.Equal(t, "2.00 Inches", result.Summaries[0].Formatted)
	assert.Equal(t, "S2", result.Summaries[1].StationID)

	assert.Equal(t, "PRCP", result.Legend.Metric)
	assert.Equal(t, "Total Precipitation", result.Legend.MetricName)
	assert.Equal(t, "Inches", result.Legend.Unit)
	assert.Equal(t, domain.ValueDomain{Min: 0, Max: 2.0}, result.Legend.Domain)
	assert.Contains(t, result.Legend.Gradient, "linear-gradient")
}

func TestQuery_ByMonth(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Query(testDataset(), pipeline.QueryParams{
		Metric: "PRCP",
		Scope:  domain.Scope{Kind: domain.ByMonth, Month: time.January},
	})
	require.NoError(t, err)

	assert.Equal(t, "Average for January", result.Description)
	require.Len(t, result.Summaries, 2)
	assert.Equal(t, 1.0, result.Summaries[0].Mean)
	assert.Equal(t, 0.0, result.Summaries[1].Mean)
}

func TestQuery_EmptyScopeIsNotAnError(t *testing.T) {
	p := newTestPipeline()

	result, err := p.Query(testDataset(), pipeline.QueryParams{
		Metric: "PRCP",
		Scope:  domain.Scope{Kind: domain.BySeason, Season: domain.Summer},
	})
	require.NoError(t, err)

	assert.True(t, result.Empty)
	assert.Empty(t, result.Summaries)
	assert.Equal(t, 0, result.Stations)
}

func TestQuery_MetricUnavailable(t *testing.T) {
	p := newTestPipeline()

	t.Run("not in dataset", func(t *testing.T) {
		_, err := p.Query(testDataset(), pipeline.QueryParams{Metric: "TMAX"})
		require.ErrorIs(t, err, pipeline.ErrMetricUnavailable)
	})

	t.Run("not in catalog", func(t *testing.T) {
		_, err := p.Query(testDataset(), pipeline.QueryParams{Metric: "WT01"})
		require.ErrorIs(t, err, pipeline.ErrMetricUnavailable)
	})
}

func TestQuery_DoesNotMutateDataset(t *testing.T) {
	p := newTestPipeline()
	ds := testDataset()

	_, err := p.Query(ds, pipeline.QueryParams{
		Metric: "PRCP",
		Scope:  domain.Scope{Kind: domain.AllTime},
	})
	require.NoError(t, err)

	assert.Len(t, ds.Records, 4)
	assert.Equal(t, "S1", ds.Records[0].StationID)
	assert.Equal(t, 1.0, ds.Records[0].Values["PRCP"])
}

func TestQuery_DateRangeLabel(t *testing.T) {
	p := newTestPipeline()

	t.Run("pre-aggregated dataset", func(t *testing.T) {
		result, err := p.Query(testDataset(), pipeline.QueryParams{
			Metric: "PRCP",
			Scope:  domain.Scope{Kind: domain.AllTime},
		})
		require.NoError(t, err)
		assert.Equal(t, "(Climatological Average)", result.DateRange)
	})

	t.Run("dated dataset", func(t *testing.T) {
		ds := testDataset()
		ds.HasDates = true
		for i := range ds.Records {
			ds.Records[i].Date = time.Date(2023, ds.Records[i].Month, 10, 0, 0, 0, 0, time.UTC)
		}

		result, err := p.Query(ds, pipeline.QueryParams{
			Metric: "PRCP",
			Scope:  domain.Scope{Kind: domain.AllTime},
		})
		require.NoError(t, err)
		assert.Equal(t, "(Jan 2023 - Mar 2023)", result.DateRange)
	})
}
