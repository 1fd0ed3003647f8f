package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

const pdfFont = "Helvetica"

// pdfColumns is the subset of the header that fits a landscape A4 page.
var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"Trip", 34, "L"},
	{"Route", 62, "L"},
	{"Start", 22, "L"},
	{"End", 22, "L"},
	{"Status", 26, "L"},
	{"Driver", 32, "L"},
	{"Unit", 16, "L"},
	{"CAD", 22, "R"},
	{"USD", 22, "R"},
	{"Total", 0, "R"}, // remaining width
}

// WritePDF writes a landscape A4 table of the report with a totals footer.
// Core fonts only cover Latin-1, so text goes through gofpdf's cp1252 translator.
func WritePDF(w io.Writer, r domain.ExportReport) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	widths := make([]float64, len(pdfColumns))
	used := 0.0
	for i, c := range pdfColumns {
		widths[i] = c.width
		used += c.width
	}
	widths[len(widths)-1] = pageWidth - left - right - used

	pdf.SetHeaderFunc(func() {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, c := range pdfColumns {
			pdf.CellFormat(widths[i], 7, c.title, "1", 0, c.align, true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont(pdfFont, "", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "", 8)
	for _, row := range r.Rows {
		cells := []string{
			row.TripName,
			routeLabel(row),
			dash(row.StartDate),
			dash(row.EndDate),
			statusLabel(row),
			dash(row.DriverName),
			dash(row.UnitNumber),
			money(row.ExpensesCAD),
			money(row.ExpensesUSD),
			money(row.GrandTotal),
		}
		for i, text := range cells {
			pdf.CellFormat(widths[i], 6, tr(clip(pdf, text, widths[i])), "1", 0, pdfColumns[i].align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont(pdfFont, "B", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Booked in CAD: %s   Booked in USD: %s   Grand total (%s): %s",
		money(r.TotalCAD), money(r.TotalUSD), r.PrimaryCurrency, money(r.GrandTotal))), "", 1, "R", false, 0, "")
	pdf.SetFont(pdfFont, "", 8)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("Rates: 1 CAD = %s USD, 1 USD = %s CAD. Generated %s.",
		r.Rates.CADToUSD, r.Rates.USDToCAD, r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))), "", 1, "R", false, 0, "")
	for _, warning := range r.Warnings {
		pdf.SetTextColor(200, 0, 0)
		pdf.MultiCell(0, 5, tr("Warning: "+warning), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export.WritePDF: %w", err)
	}
	return nil
}

func routeLabel(row domain.ExportRow) string {
	if row.Origin == "" && row.Destination == "" {
		return "-"
	}
	return dash(row.Origin) + " to " + dash(row.Destination)
}

func statusLabel(row domain.ExportRow) string {
	s := string(row.Status)
	if row.UnknownDates {
		s += "?"
	}
	if row.Locked {
		s += " (locked)"
	}
	return s
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// clip shortens text with an ellipsis until it fits width.
func clip(pdf *gofpdf.Fpdf, text string, width float64) string {
	const pad = 2
	if pdf.GetStringWidth(text) <= width-pad {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-pad {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
