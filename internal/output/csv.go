// internal/output/csv.go
package output

import (
	"encoding/csv"
	"io"

	"bammart-core/mart"
)

// WriteCSV serializes the table as UTF-8 CSV with a header row. An empty
// table (no schema) produces an empty artifact, which is still a valid run
// outcome.
func WriteCSV(w io.Writer, t mart.Table) error {
	if len(t.Columns) == 0 {
		return nil
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
