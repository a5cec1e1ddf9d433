package domain

import "time"

// Column names recognized by the normalizer. Metric columns come from
// [Catalog]; everything else in an input file is ignored.
const (
	ColStation   = "STATION"
	ColName      = "NAME"
	ColLatitude  = "LATITUDE"
	ColLongitude = "LONGITUDE"
	ColDate      = "DATE"
	ColMonth     = "Month"
	ColSeason    = "Season"
)

// Table is a parsed delimited file: a header row plus data rows, all cells
// still raw strings. Produced by the csvfile adapter.
type Table struct {
	Header []string
	Rows   [][]string
}

// Observation is one canonical record. After [Normalize] every observation
// carries a resolved month and season regardless of the input shape.
type Observation struct {
	StationID   string
	StationName string
	Lat         float64
	Lon         float64

	// Date is the calendar date for raw daily records, zero for
	// pre-aggregated monthly rows.
	Date      time.Time
	Month     time.Month
	MonthName string
	Season    Season

	// Values maps metric code to reading. Missing, unparseable, and NaN
	// cells are absent from the map rather than stored as zero.
	Values map[string]float64
}

// Dataset is a fully normalized record set, cached per source by the
// pipeline and never mutated after load.
type Dataset struct {
	Records []Observation
	// Metrics lists the usable metric codes, in catalog order.
	Metrics []string
	// Dropped counts rows discarded for unparseable dates or months.
	Dropped int
	// HasDates is true for the raw daily input shape.
	HasDates bool

	Source   string
	LoadedAt time.Time
}

// DefaultMetric returns the initial metric selection for this dataset.
func (d *Dataset) DefaultMetric() string {
	return DefaultMetric(d.Metrics)
}

// HasMetric reports whether the given code is usable in this dataset.
func (d *Dataset) HasMetric(code string) bool {
	for _, m := range d.Metrics {
		if m == code {
			return true
		}
	}
	return false
}

// DateRangeLabel describes the calendar span of a record subset for legend
// subtitles, e.g. "(Jan 2020 - Dec 2023)". Pre-aggregated records have no
// dates, so the label falls back to "(Climatological Average)".
func DateRangeLabel(records []Observation) string {
	var start, end time.Time
	for _, o := range records {
		if o.Date.IsZero() {
			continue
		}
		if start.IsZero() || o.Date.Before(start) {
			start = o.Date
		}
		if end.IsZero() || o.Date.After(end) {
			end = o.Date
		}
	}
	if start.IsZero() {
		return "(Climatological Average)"
	}
	return "(" + start.Format("Jan 2006") + " - " + end.Format("Jan 2006") + ")"
}
