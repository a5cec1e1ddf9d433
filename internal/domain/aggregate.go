package domain

import (
	"math"
	"sort"
	"time"
)

// StationSummary is one aggregated row per distinct station. Color and
// Formatted are filled in by the color-mapping stage.
type StationSummary struct {
	StationID   string  `json:"station"`
	StationName string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Mean        float64 `json:"mean"`
	Count       int     `json:"count"`
	Color       RGBA    `json:"color"`
	Formatted   string  `json:"formatted_value"`
}

// Aggregate groups a record subset by station identifier and computes the
// arithmetic mean of one metric per station. Name and coordinates are carried
// from the station's first record; they are functionally dependent on the
// identifier. Stations with no valid observation of the metric are omitted.
//
// Records need not come from [Normalize]: callers may construct observations
// directly, so NaN readings in Values are excluded here the same way missing
// cells are.
//
// Output order is first-seen order, and values are summed in input order, so
// repeated runs over the same input produce bit-identical means.
func Aggregate(records []Observation, metric string) []StationSummary {
	var order []string
	groups := make(map[string]*StationSummary)
	sums := make(map[string]float64)

	for _, o := range records {
		v, ok := o.Values[metric]
		if !ok || math.IsNaN(v) {
			continue
		}
		g, seen := groups[o.StationID]
		if !seen {
			g = &StationSummary{
				StationID:   o.StationID,
				StationName: o.StationName,
				Lat:         o.Lat,
				Lon:         o.Lon,
			}
			groups[o.StationID] = g
			order = append(order, o.StationID)
		}
		sums[o.StationID] += v
		g.Count++
	}

	out := make([]StationSummary, 0, len(order))
	for _, id := range order {
		g := groups[id]
		g.Mean = sums[id] / float64(g.Count)
		out = append(out, *g)
	}
	return out
}

// MonthlyNorm is one row of the batch precompute output: the per-month mean
// of every available metric for one station.
type MonthlyNorm struct {
	StationID   string
	StationName string
	Lat         float64
	Lon         float64
	Month       time.Month
	Season      Season
	// Values holds the mean per metric code; metrics with no valid
	// observation in the group are absent.
	Values map[string]float64
}

type monthKey struct {
	station string
	month   time.Month
}

// MonthlyNorms collapses a canonical record set to one row per station and
// month, averaging each of the given metrics independently. The season is
// derived from the month. Output is sorted by station identifier, then month.
// NaN readings are excluded like missing cells, as in [Aggregate].
func MonthlyNorms(records []Observation, metrics []string) []MonthlyNorm {
	type group struct {
		norm   MonthlyNorm
		sums   map[string]float64
		counts map[string]int
	}

	groups := make(map[monthKey]*group)
	var keys []monthKey

	for _, o := range records {
		k := monthKey{station: o.StationID, month: o.Month}
		g, seen := groups[k]
		if !seen {
			g = &group{
				norm: MonthlyNorm{
					StationID:   o.StationID,
					StationName: o.StationName,
					Lat:         o.Lat,
					Lon:         o.Lon,
					Month:       o.Month,
					Season:      SeasonForMonth(o.Month),
					Values:      make(map[string]float64, len(metrics)),
				},
				sums:   make(map[string]float64, len(metrics)),
				counts: make(map[string]int, len(metrics)),
			}
			groups[k] = g
			keys = append(keys, k)
		}
		for _, code := range metrics {
			v, ok := o.Values[code]
			if !ok || math.IsNaN(v) {
				continue
			}
			g.sums[code] += v
			g.counts[code]++
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].station != keys[j].station {
			return keys[i].station < keys[j].station
		}
		return keys[i].month < keys[j].month
	})

	out := make([]MonthlyNorm, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		for _, code := range metrics {
			if n := g.counts[code]; n > 0 {
				g.norm.Values[code] = g.sums[code] / float64(n)
			}
		}
		out = append(out, g.norm)
	}
	return out
}
