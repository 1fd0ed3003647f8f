package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// WriteCSV writes one header line, one line per row and a closing totals line.
func WriteCSV(w io.Writer, r domain.ExportReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	for _, row := range r.Rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("export.WriteCSV: %w", err)
		}
	}

	totals := make([]string, len(header))
	totals[1] = "TOTAL (" + string(r.PrimaryCurrency) + ")"
	totals[11] = money(r.TotalCAD)
	totals[12] = money(r.TotalUSD)
	totals[13] = money(r.GrandTotal)
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.WriteCSV: %w", err)
	}
	return nil
}
