// Package csvfile reads NOAA CSV exports into raw tables and writes
// monthly-norms CSV files back out. It is the file-based source and sink for
// the aggregation pipeline.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/climate-norms/internal/domain"
)

// ReadTable parses comma-separated data with a required header row.
func ReadTable(r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return domain.Table{}, fmt.Errorf("read header: empty input")
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("read header: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return domain.Table{}, fmt.Errorf("read rows: %w", err)
	}

	return domain.Table{Header: header, Rows: rows}, nil
}

// ReadTableFile opens and parses a CSV file.
func ReadTableFile(path string) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return domain.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
