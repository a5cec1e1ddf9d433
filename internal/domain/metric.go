package domain

// ColorClass selects which palette and domain policy a metric uses.
type ColorClass int

const (
	// DivergingTemperature stretches the palette between the observed
	// minimum and maximum. Used for temperature metrics, where the
	// interesting signal is relative position within the observed range.
	DivergingTemperature ColorClass = iota
	// SequentialAccumulation anchors the domain minimum at zero. Used for
	// precipitation totals and day-count metrics, where zero is meaningful.
	SequentialAccumulation
)

// Metric describes one entry in the fixed GSOM metric catalog.
type Metric struct {
	Code        string
	DisplayName string
	Unit        string
	Class       ColorClass
}

// Catalog is the closed registry of supported metrics, in display order.
// Codes and descriptions follow the NOAA GSOM documentation.
var Catalog = []Metric{
	{Code: "TAVG", DisplayName: "Average Temperature", Unit: "°F", Class: DivergingTemperature},
	{Code: "TMAX", DisplayName: "Maximum Temperature", Unit: "°F", Class: DivergingTemperature},
	{Code: "TMIN", DisplayName: "Minimum Temperature", Unit: "°F", Class: DivergingTemperature},
	{Code: "PRCP", DisplayName: "Total Precipitation", Unit: "Inches", Class: SequentialAccumulation},
	{Code: "DT32", DisplayName: "Days with Min Temp ≤ 32°F (Freezing)", Unit: "Days", Class: SequentialAccumulation},
	{Code: "DP01", DisplayName: "Days with Precip ≥ 0.01 inch", Unit: "Days", Class: SequentialAccumulation},
	{Code: "DP10", DisplayName: "Days with Precip ≥ 0.10 inch", Unit: "Days", Class: SequentialAccumulation},
	{Code: "DSND", DisplayName: "Days with Snow Depth ≥ 1 inch", Unit: "Days", Class: SequentialAccumulation},
	{Code: "DSNW", DisplayName: "Days with Snowfall ≥ 1 inch", Unit: "Days", Class: SequentialAccumulation},
}

// LookupMetric returns the catalog entry for a metric code.
func LookupMetric(code string) (Metric, bool) {
	for _, m := range Catalog {
		if m.Code == code {
			return m, true
		}
	}
	return Metric{}, false
}

// AvailableMetrics returns the catalog codes present among the given column
// names, in catalog order.
func AvailableMetrics(columns []string) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	var codes []string
	for _, m := range Catalog {
		if present[m.Code] {
			codes = append(codes, m.Code)
		}
	}
	return codes
}

// DefaultMetric picks the initial metric selection for a dataset:
// PRCP if available, then TMAX, then the first available code.
// Returns "" for an empty list.
func DefaultMetric(available []string) string {
	for _, preferred := range []string{"PRCP", "TMAX"} {
		for _, code := range available {
			if code == preferred {
				return code
			}
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}
