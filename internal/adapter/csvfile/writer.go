package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/couchcryptid/climate-norms/internal/domain"
)

// WriteMonthlyNorms serializes precomputed monthly norms as CSV with the
// column layout the normalizer's pre-aggregated branch reads back:
// station identity, Month, one column per metric, then Season. Numeric
// values keep native float64 precision; a metric with no valid observations
// in a group is written as an empty cell.
func WriteMonthlyNorms(w io.Writer, norms []domain.MonthlyNorm, metrics []string) error {
	cw := csv.NewWriter(w)

	header := []string{
		domain.ColStation,
		domain.ColName,
		domain.ColLatitude,
		domain.ColLongitude,
		domain.ColMonth,
	}
	header = append(header, metrics...)
	header = append(header, domain.ColSeason)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, 0, len(header))
	for _, n := range norms {
		row = row[:0]
		row = append(row,
			n.StationID,
			n.StationName,
			formatFloat(n.Lat),
			formatFloat(n.Lon),
			strconv.Itoa(int(n.Month)),
		)
		for _, code := range metrics {
			if v, ok := n.Values[code]; ok {
				row = append(row, formatFloat(v))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, string(n.Season))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMonthlyNormsFile writes norms to a new file at path.
func WriteMonthlyNormsFile(path string, norms []domain.MonthlyNorm, metrics []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteMonthlyNorms(f, norms, metrics); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}

// formatFloat renders a float64 with the shortest representation that
// round-trips exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
