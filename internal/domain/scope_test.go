package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scopedRecords() []Observation {
	return []Observation{
		{StationID: "S1", Month: time.January, Season: Winter, Values: map[string]float64{"PRCP": 1.0}},
		{StationID: "S1", Month: time.February, Season: Winter, Values: map[string]float64{"PRCP": 2.0}},
		{StationID: "S1", Month: time.March, Season: Spring, Values: map[string]float64{"PRCP": 3.0}},
		{StationID: "S2", Month: time.January, Season: Winter, Values: map[string]float64{"PRCP": 0.0}},
	}
}

func TestFilterScope_AllTime(t *testing.T) {
	records := scopedRecords()
	got := FilterScope(records, Scope{Kind: AllTime})

	assert.Empty(t, cmp.Diff(records, got))

	// The result is a fresh slice, not a view onto the input.
	got[0].StationID = "mutated"
	assert.Equal(t, "S1", records[0].StationID)
}

func TestFilterScope_BySeason(t *testing.T) {
	got := FilterScope(scopedRecords(), Scope{Kind: BySeason, Season: Winter})
	require.Len(t, got, 3)
	for _, o := range got {
		assert.Equal(t, Winter, o.Season)
	}
}

func TestFilterScope_ByMonth(t *testing.T) {
	got := FilterScope(scopedRecords(), Scope{Kind: ByMonth, Month: time.March})
	require.Len(t, got, 1)
	assert.Equal(t, time.March, got[0].Month)
}

func TestFilterScope_EmptyResultIsValid(t *testing.T) {
	got := FilterScope(scopedRecords(), Scope{Kind: BySeason, Season: Summer})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScopeDescription(t *testing.T) {
	assert.Equal(t, "All Time Average", Scope{Kind: AllTime}.Description())
	assert.Equal(t, "Average for Winter", Scope{Kind: BySeason, Season: Winter}.Description())
	assert.Equal(t, "Average for March", Scope{Kind: ByMonth, Month: time.March}.Description())
}

func TestScopeKindString(t *testing.T) {
	assert.Equal(t, "all", AllTime.String())
	assert.Equal(t, "season", BySeason.String())
	assert.Equal(t, "month", ByMonth.String())
}
