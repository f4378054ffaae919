package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes rows as comma-separated values with a header line. An
// empty row set writes a single "no data" comment and no header, so a
// consumer can tell an empty export from a truncated one.
func WriteCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		_, err := io.WriteString(w, "# No data\n")
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(rowHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Date, r.Type, r.Time, r.Minute, r.Value, r.Unit}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
