// Package domain models NOAA climate-station records and the
// aggregation-and-color-mapping logic built on top of them.
//
// # Data Source
//
// Input files are CSV exports from NOAA's Climate Data Online service
// (https://www.ncei.noaa.gov/cdo-web/). Two shapes are accepted:
//
//	Raw daily records:   one row per station per day, with a DATE column
//	                     in YYYY-MM-DD form.
//	Monthly norms:       one row per station per month, with a Month column
//	                     (1-12) and optionally a pre-computed Season column.
//	                     This is the shape cmd/precompute writes.
//
// Both shapes share the station identity columns STATION, NAME, LATITUDE and
// LONGITUDE, plus zero or more metric columns whose codes come from the GSOM
// documentation (https://www.ncei.noaa.gov/data/gsom/doc/GSOM_documentation.pdf):
//
//	TAVG, TMAX, TMIN   temperatures in °F
//	PRCP               total precipitation in inches
//	DT32               days with minimum temperature at or below freezing
//	DP01, DP10         days with precipitation >= 0.01 / 0.10 inch
//	DSND, DSNW         days with snow depth / snowfall >= 1 inch
//
// # Canonical Records
//
// [Normalize] collapses both input shapes into [Observation] values that
// always carry a resolved month and season. Seasons follow the meteorological
// convention: Dec-Feb Winter, Mar-May Spring, Jun-Aug Summer, Sep-Nov Autumn.
// A Season column already present in a monthly-norms file is preserved
// verbatim rather than re-derived.
//
// # Missing Values
//
// Empty cells, unparseable numbers, and NaN are treated as absent
// observations. They never contribute to a station mean, and a station with
// no valid observations for the selected metric is omitted from the output
// entirely rather than emitted with a placeholder.
//
// # Color Mapping
//
// Station means are mapped onto a fixed palette by piecewise-linear
// interpolation. Temperature metrics stretch the palette between the observed
// minimum and maximum; accumulation metrics anchor the low end at zero. A
// zero-width domain substitutes a maximum of 1 so every value lands on the
// first palette color. Channel blending truncates rather than rounds, which
// keeps output byte-identical with the historical front end.
package domain
