package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// SchemaError reports an input file that cannot be normalized at all:
// no temporal basis, no station identity, or no recognized metric columns.
// It is fatal to the load; no partial dataset is produced.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "unusable schema: " + e.Reason
}

// dateLayouts are tried in order when parsing the DATE column. CDO daily
// exports use YYYY-MM-DD; GSOM monthly exports use YYYY-MM.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006-01-02 15:04:05"}

// Normalize converts a parsed table into a canonical dataset.
//
// Shape detection happens once, here: a DATE column selects the raw daily
// branch, otherwise a Month column selects the pre-aggregated branch, and a
// table with neither fails with *SchemaError. Rows whose date or month does
// not parse are dropped and counted in Dataset.Dropped; the load continues.
func Normalize(t Table) (*Dataset, error) {
	col := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		col[strings.TrimSpace(name)] = i
	}

	metrics := AvailableMetrics(t.Header)
	if len(metrics) == 0 {
		return nil, &SchemaError{Reason: "no recognized metric columns"}
	}

	stationIdx, ok := col[ColStation]
	if !ok {
		return nil, &SchemaError{Reason: "no " + ColStation + " column"}
	}

	dateIdx, hasDate := col[ColDate]
	monthIdx, hasMonth := col[ColMonth]
	if !hasDate && !hasMonth {
		return nil, &SchemaError{Reason: "no " + ColDate + " or " + ColMonth + " column"}
	}
	seasonIdx, hasSeason := col[ColSeason]

	nameIdx, hasName := col[ColName]
	latIdx, hasLat := col[ColLatitude]
	lonIdx, hasLon := col[ColLongitude]

	ds := &Dataset{
		Records:  make([]Observation, 0, len(t.Rows)),
		Metrics:  metrics,
		HasDates: hasDate,
		LoadedAt: clock.Now(),
	}

	for _, row := range t.Rows {
		o := Observation{
			StationID: strings.TrimSpace(cell(row, stationIdx)),
			Values:    make(map[string]float64, len(metrics)),
		}
		if hasName {
			o.StationName = strings.TrimSpace(cell(row, nameIdx))
		}
		if hasLat {
			o.Lat = parseFloatOrZero(cell(row, latIdx))
		}
		if hasLon {
			o.Lon = parseFloatOrZero(cell(row, lonIdx))
		}

		if hasDate {
			date, ok := parseDate(cell(row, dateIdx))
			if !ok {
				ds.Dropped++
				continue
			}
			o.Date = date
			o.Month = date.Month()
			o.Season = SeasonForMonth(o.Month)
		} else {
			month, ok := parseMonth(cell(row, monthIdx))
			if !ok {
				ds.Dropped++
				continue
			}
			o.Month = month
			// A season already present in a pre-aggregated file is
			// preserved verbatim, not re-derived.
			if s := seasonCell(row, seasonIdx, hasSeason); s != "" {
				o.Season = Season(s)
			} else {
				o.Season = SeasonForMonth(month)
			}
		}
		o.MonthName = o.Month.String()

		for _, code := range metrics {
			v, ok := parseMetric(cell(row, col[code]))
			if ok {
				o.Values[code] = v
			}
		}

		ds.Records = append(ds.Records, o)
	}

	return ds, nil
}

// cell returns the i-th field of a row, tolerating short rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func seasonCell(row []string, idx int, present bool) string {
	if !present {
		return ""
	}
	return strings.TrimSpace(cell(row, idx))
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseMonth(s string) (time.Month, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}

// parseMetric parses a metric cell. Empty cells, unparseable values, NaN,
// and infinities all count as missing.
func parseMetric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
