package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Print writes the solved table as delimited text: one line per row, fields
// in column order.
func Print(w io.Writer, s *Solved, opts ...Option) error {
	o := buildOptions(opts)

	writer := csv.NewWriter(w)
	writer.Comma = o.Delimiter

	var (
		record []string
		row    = -1
	)
	for c, v := range s.All() {
		if c.Row != row && record != nil {
			if err := writer.Write(record); err != nil {
				return fmt.Errorf("writing row %d: %w", row+1, err)
			}
			record = record[:0]
		}
		row = c.Row
		record = append(record, v)
	}
	if record != nil {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", row+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
