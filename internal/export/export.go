// Package export renders a domain.ExportReport as CSV, XLSX or PDF.
// Renderers never compute; every figure comes from the report as given.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "csv", "xlsx" or "pdf" in any case; blank means CSV.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", domain.ErrValidation, raw)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "text/csv; charset=utf-8"
}

// Filename builds the attachment name for a report generated at the report's snapshot time.
func (f Format) Filename(r domain.ExportReport) string {
	return fmt.Sprintf("trips-%s.%s", r.GeneratedAt.UTC().Format("20060102-1504"), f)
}

// Write renders r to w in format f.
func Write(w io.Writer, f Format, r domain.ExportReport) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	}
	return fmt.Errorf("export.Write: %w: unknown export format %q", domain.ErrValidation, f)
}

// header is shared by the tabular formats.
var header = []string{
	"trip_id", "trip", "origin", "destination", "start_date", "end_date",
	"status", "locked", "driver", "unit", "distance_miles",
	"expenses_cad", "expenses_usd", "grand_total", "expense_count",
}

func record(row domain.ExportRow) []string {
	status := string(row.Status)
	if row.UnknownDates {
		status += " (dates unknown)"
	}
	return []string{
		row.TripID,
		row.TripName,
		row.Origin,
		row.Destination,
		row.StartDate,
		row.EndDate,
		status,
		strconv.FormatBool(row.Locked),
		row.DriverName,
		row.UnitNumber,
		strconv.FormatFloat(row.DistanceMiles, 'f', -1, 64),
		money(row.ExpensesCAD),
		money(row.ExpensesUSD),
		money(row.GrandTotal),
		strconv.Itoa(row.ExpenseCount),
	}
}

// money formats for display only; stored and aggregated values keep full precision.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
