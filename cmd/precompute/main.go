// Command precompute collapses a raw daily NOAA CSV into monthly norms:
// one row per station and month carrying the mean of every available metric
// plus the derived season. The output file loads back through the
// normalizer's pre-aggregated branch and yields the same aggregates as the
// raw input.
//
// Usage:
//
//	go run ./cmd/precompute -in seattle_weather.csv -out seattle_weather_monthly_norms.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/couchcryptid/climate-norms/internal/adapter/csvfile"
	"github.com/couchcryptid/climate-norms/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "path to raw daily CSV input")
	out := flag.String("out", "", "path for the monthly norms CSV output")
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -in, -out")
	}

	table, err := csvfile.ReadTableFile(*in)
	if err != nil {
		return err
	}

	ds, err := domain.Normalize(table)
	if err != nil {
		return fmt.Errorf("normalize %s: %w", *in, err)
	}
	if ds.Dropped > 0 {
		log.Printf("dropped %d rows with unparseable dates", ds.Dropped)
	}

	norms := domain.MonthlyNorms(ds.Records, ds.Metrics)
	if err := csvfile.WriteMonthlyNormsFile(*out, norms, ds.Metrics); err != nil {
		return err
	}

	log.Printf("input rows: %d", len(ds.Records))
	log.Printf("output rows: %d", len(norms))
	log.Printf("metrics: %v", ds.Metrics)
	logSizes(*in, *out)
	return nil
}

func logSizes(in, out string) {
	inInfo, err1 := os.Stat(in)
	outInfo, err2 := os.Stat(out)
	if err1 != nil || err2 != nil {
		return
	}
	log.Printf("input size: %.2f KB", float64(inInfo.Size())/1024)
	log.Printf("output size: %.2f KB", float64(outInfo.Size())/1024)
}
