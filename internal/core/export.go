package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// SelectForExport applies f and then the status constraint:
//   - "" keeps every status
//   - "Others" keeps records whose status is not one of the five named ones
//   - anything else keeps records whose status equals it exactly
func SelectForExport(records []Record, f Filter, status string) []Record {
	subset := Select(records, f)
	if status == "" {
		return subset
	}

	out := make([]Record, 0, len(subset))
	for _, r := range subset {
		if status == string(StatusOthers) {
			if !r.Status.IsNamed() {
				out = append(out, r)
			}
			continue
		}
		if string(r.Status) == status {
			out = append(out, r)
		}
	}
	return out
}

// ExportCSV writes the selected records as CSV with a header row of the
// canonical columns.
func ExportCSV(records []Record, f Filter, status string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, SelectForExport(records, f, status)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes records to w in canonical column order.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ExportFilename names the download for a status selection.
func ExportFilename(status string) string {
	if status == "" {
		status = "others"
	}
	return status + "_data.csv"
}
