// Command validate cross-checks a precomputed monthly-norms file against the
// raw daily CSV it was derived from. It verifies the norms schema, station
// parity, and that per-month and all-time aggregates computed from the norms
// match the same aggregates computed directly from the raw data.
//
// Usage:
//
//	go run ./cmd/validate -raw seattle_weather.csv -norms seattle_weather_monthly_norms.csv
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/climate-norms/internal/adapter/csvfile"
	"github.com/couchcryptid/climate-norms/internal/domain"
)

// tolerance bounds the acceptable float drift between aggregates computed
// from the raw data and from the precomputed norms.
const tolerance = 1e-6

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawPath := flag.String("raw", "", "path to the raw daily CSV")
	normsPath := flag.String("norms", "", "path to the precomputed monthly norms CSV")
	flag.Parse()

	if *rawPath == "" || *normsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawPath, *normsPath); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, normsPath string) int {
	fmt.Println("=== Monthly Norms Integrity Validation ===")
	fmt.Println()

	raw, err := loadDataset(rawPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw CSV: %v\n", err)
		return 1
	}
	norms, err := loadDataset(normsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load norms CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(raw, norms),
		validateStationParity(raw, norms),
		validateAggregateParity(raw, norms),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-36s %s\n", p.name, status)
		for _, e := range p.errors {
			fmt.Printf("      - %s\n", e)
		}
	}

	fmt.Println()
	if !allPassed {
		fmt.Println("validation FAILED")
		return 1
	}
	fmt.Println("validation passed")
	return 0
}

func loadDataset(path string) (*domain.Dataset, error) {
	table, err := csvfile.ReadTableFile(path)
	if err != nil {
		return nil, err
	}
	ds, err := domain.Normalize(table)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	ds.Source = path
	return ds, nil
}

// validateSchema checks that the norms file is the pre-aggregated shape,
// carries the raw file's metrics, and has seasons consistent with its months.
func validateSchema(raw, norms *domain.Dataset) *phase {
	p := &phase{name: "norms schema"}

	if norms.HasDates {
		p.errorf("norms file still has a DATE column; expected pre-aggregated shape")
	}
	if norms.Dropped > 0 {
		p.errorf("%d norms rows dropped during load", norms.Dropped)
	}
	if len(norms.Metrics) != len(raw.Metrics) {
		p.errorf("metric mismatch: raw has %v, norms has %v", raw.Metrics, norms.Metrics)
	}
	for _, o := range norms.Records {
		if want := domain.SeasonForMonth(o.Month); o.Season != want {
			p.errorf("station %s month %d: season %q, want %q", o.StationID, o.Month, o.Season, want)
		}
	}
	return p
}

// validateStationParity checks that both files cover the same stations with
// the same identity attributes.
func validateStationParity(raw, norms *domain.Dataset) *phase {
	p := &phase{name: "station parity"}

	rawStations := stationIndex(raw)
	normStations := stationIndex(norms)

	for id, want := range rawStations {
		got, ok := normStations[id]
		if !ok {
			p.errorf("station %s missing from norms", id)
			continue
		}
		if got.StationName != want.StationName {
			p.errorf("station %s: name %q, want %q", id, got.StationName, want.StationName)
		}
		if got.Lat != want.Lat || got.Lon != want.Lon {
			p.errorf("station %s: coordinates (%v,%v), want (%v,%v)", id, got.Lat, got.Lon, want.Lat, want.Lon)
		}
	}
	for id := range normStations {
		if _, ok := rawStations[id]; !ok {
			p.errorf("station %s in norms but not in raw", id)
		}
	}
	return p
}

// validateAggregateParity recomputes per-month and all-time station means
// from both files and compares them within tolerance. Per-month means must
// agree exactly up to float drift; the all-time mean over norms is the
// unweighted mean of monthly means, so it is compared against the same
// reassembly computed from the raw data.
func validateAggregateParity(raw, norms *domain.Dataset) *phase {
	p := &phase{name: "aggregate parity"}

	rawNorms := domain.MonthlyNorms(raw.Records, raw.Metrics)

	for _, metric := range raw.Metrics {
		for month := time.January; month <= time.December; month++ {
			scope := domain.Scope{Kind: domain.ByMonth, Month: month}
			fromNorms := summaryMap(domain.Aggregate(domain.FilterScope(norms.Records, scope), metric))
			fromRaw := summaryMap(domain.Aggregate(domain.FilterScope(raw.Records, scope), metric))
			compareMeans(p, fmt.Sprintf("%s month %d", metric, month), fromRaw, fromNorms)
		}

		fromNorms := summaryMap(domain.Aggregate(norms.Records, metric))
		reassembled := summaryMap(domain.Aggregate(normObservations(rawNorms), metric))
		compareMeans(p, metric+" all-time", reassembled, fromNorms)
	}
	return p
}

func compareMeans(p *phase, label string, want, got map[string]float64) {
	for id, w := range want {
		g, ok := got[id]
		if !ok {
			p.errorf("%s: station %s missing from norms aggregate", label, id)
			continue
		}
		if math.Abs(g-w) > tolerance {
			p.errorf("%s: station %s mean %v, want %v", label, id, g, w)
		}
	}
	for id := range got {
		if _, ok := want[id]; !ok {
			p.errorf("%s: unexpected station %s in norms aggregate", label, id)
		}
	}
}

func summaryMap(summaries []domain.StationSummary) map[string]float64 {
	out := make(map[string]float64, len(summaries))
	for _, s := range summaries {
		out[s.StationID] = s.Mean
	}
	return out
}

// normObservations converts precomputed norms back into canonical records so
// they can run through the same aggregation path.
func normObservations(norms []domain.MonthlyNorm) []domain.Observation {
	out := make([]domain.Observation, 0, len(norms))
	for _, n := range norms {
		out = append(out, domain.Observation{
			StationID:   n.StationID,
			StationName: n.StationName,
			Lat:         n.Lat,
			Lon:         n.Lon,
			Month:       n.Month,
			MonthName:   n.Month.String(),
			Season:      n.Season,
			Values:      n.Values,
		})
	}
	return out
}

func stationIndex(ds *domain.Dataset) map[string]domain.Observation {
	out := make(map[string]domain.Observation)
	for _, o := range ds.Records {
		if _, ok := out[o.StationID]; !ok {
			out[o.StationID] = o
		}
	}
	return out
}
