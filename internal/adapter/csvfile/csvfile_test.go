package csvfile_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-norms/internal/adapter/csvfile"
	"github.com/couchcryptid/climate-norms/internal/domain"
)

func TestReadTable(t *testing.T) {
	input := strings.Join([]string{
		"STATION,NAME,DATE,PRCP",
		"S1,Downtown,2023-01-10,0.45",
		"S2,Hilltop,2023-01-10,",
	}, "\n")

	table, err := csvfile.ReadTable(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"STATION", "NAME", "DATE", "PRCP"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"S1", "Downtown", "2023-01-10", "0.45"}, table.Rows[0])
	assert.Equal(t, "", table.Rows[1][3])
}

func TestReadTable_RaggedRows(t *testing.T) {
	input := strings.Join([]string{
		"STATION,DATE,PRCP",
		"S1,2023-01-10,0.45",
		"S2,2023-01-10",
	}, "\n")

	table, err := csvfile.ReadTable(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[1], 2)
}

func TestReadTable_EmptyInput(t *testing.T) {
	_, err := csvfile.ReadTable(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty input")
}

func TestReadTableFile_Missing(t *testing.T) {
	_, err := csvfile.ReadTableFile("does-not-exist.csv")
	require.Error(t, err)
}

func TestWriteMonthlyNorms(t *testing.T) {
	norms := []domain.MonthlyNorm{
		{
			StationID:   "S1",
			StationName: "Downtown",
			Lat:         47.6,
			Lon:         -122.33,
			Month:       time.January,
			Season:      domain.Winter,
			Values:      map[string]float64{"PRCP": 1.25, "TMAX": 45.5},
		},
		{
			StationID:   "S1",
			StationName: "Downtown",
			Lat:         47.6,
			Lon:         -122.33,
			Month:       time.February,
			Season:      domain.Winter,
			Values:      map[string]float64{"PRCP": 0.75},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, csvfile.WriteMonthlyNorms(&buf, norms, []string{"PRCP", "TMAX"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "STATION,NAME,LATITUDE,LONGITUDE,Month,PRCP,TMAX,Season", lines[0])
	assert.Equal(t, "S1,Downtown,47.6,-122.33,1,1.25,45.5,Winter", lines[1])

	// Missing metric stays an empty cell rather than a zero.
	assert.Equal(t, "S1,Downtown,47.6,-122.33,2,0.75,,Winter", lines[2])
}

// TestNormsRoundTrip exercises the precompute contract end to end: daily raw
// rows aggregated into monthly norms, serialized, read back through the
// pre-aggregated branch, and re-aggregated. Per-month means must agree with
// the raw per-month means, and missing cells must stay missing.
func TestNormsRoundTrip(t *testing.T) {
	raw := domain.Table{
		Header: []string{"STATION", "NAME", "LATITUDE", "LONGITUDE", "DATE", "PRCP", "TMAX"},
		Rows: [][]string{
			{"S1", "Downtown", "47.6", "-122.33", "2022-01-05", "1.0", "44"},
			{"S1", "Downtown", "47.6", "-122.33", "2023-01-12", "3.0", "46"},
			{"S1", "Downtown", "47.6", "-122.33", "2023-02-03", "0.5", "50"},
			{"S2", "Hilltop", "47.52", "-122.1", "2023-01-12", "0.0", ""},
			{"S2", "Hilltop", "47.52", "-122.1", "2023-02-03", "2.0", "48"},
		},
	}

	rawDS, err := domain.Normalize(raw)
	require.NoError(t, err)
	norms := domain.MonthlyNorms(rawDS.Records, rawDS.Metrics)

	var buf bytes.Buffer
	require.NoError(t, csvfile.WriteMonthlyNorms(&buf, norms, rawDS.Metrics))

	table, err := csvfile.ReadTable(&buf)
	require.NoError(t, err)
	normDS, err := domain.Normalize(table)
	require.NoError(t, err)

	assert.False(t, normDS.HasDates)
	assert.Equal(t, 0, normDS.Dropped)
	assert.Equal(t, rawDS.Metrics, normDS.Metrics)

	for month := time.January; month <= time.February; month++ {
		scope := domain.Scope{Kind: domain.ByMonth, Month: month}
		for _, code := range rawDS.Metrics {
			want := domain.Aggregate(domain.FilterScope(rawDS.Records, scope), code)
			got := domain.Aggregate(domain.FilterScope(normDS.Records, scope), code)
			require.Len(t, got, len(want), "%s %s", code, month)
			for i := range want {
				assert.Equal(t, want[i].StationID, got[i].StationID)
				assert.InDelta(t, want[i].Mean, got[i].Mean, 1e-6, "%s %s %s", code, month, want[i].StationID)
			}
		}
	}

	// S2 has no January TMAX observation in the raw data, so the norms file
	// must carry an empty cell and the round-tripped record no TMAX value.
	for _, o := range normDS.Records {
		if o.StationID == "S2" && o.Month == time.January {
			_, ok := o.Values["TMAX"]
			assert.False(t, ok)
		}
	}
}
