package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

const (
	tripsSheet   = "Trips"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with a Trips sheet and a Summary sheet.
// Amounts are written as numbers so spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, r domain.ExportReport) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", tripsSheet); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	writeTrips(file, r)

	if _, err := file.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	writeSummary(file, r)

	file.SetActiveSheet(0)
	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("export.WriteXLSX: %w", err)
	}
	return nil
}

func writeTrips(file *excelize.File, r domain.ExportReport) {
	set := func(col, row int, value any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = file.SetCellValue(tripsSheet, cell, value)
	}

	for i, h := range header {
		set(i+1, 1, h)
	}
	for i, row := range r.Rows {
		line := i + 2
		for j, v := range record(row) {
			set(j+1, line, v)
		}
		// Numeric columns overwrite their string renditions.
		set(11, line, row.DistanceMiles)
		set(12, line, row.ExpensesCAD.InexactFloat64())
		set(13, line, row.ExpensesUSD.InexactFloat64())
		set(14, line, row.GrandTotal.InexactFloat64())
		set(15, line, row.ExpenseCount)
	}

	_ = file.SetColWidth(tripsSheet, "A", "A", 38)
	_ = file.SetColWidth(tripsSheet, "B", "D", 22)
	_ = file.SetColWidth(tripsSheet, "E", "J", 14)
	_ = file.SetColWidth(tripsSheet, "K", "O", 14)
	_ = file.SetPanes(tripsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummary(file *excelize.File, r domain.ExportReport) {
	set := func(cell string, value any) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", "Generated at")
	set("B1", r.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"))
	set("A2", "Primary currency")
	set("B2", string(r.PrimaryCurrency))
	set("A3", "CAD to USD")
	set("B3", r.Rates.CADToUSD.String())
	set("A4", "USD to CAD")
	set("B4", r.Rates.USDToCAD.String())
	set("A5", "Trips")
	set("B5", len(r.Rows))
	set("A6", "Expenses booked in CAD")
	set("B6", r.TotalCAD.InexactFloat64())
	set("A7", "Expenses booked in USD")
	set("B7", r.TotalUSD.InexactFloat64())
	set("A8", "Grand total ("+string(r.PrimaryCurrency)+")")
	set("B8", r.GrandTotal.InexactFloat64())

	for i, warning := range r.Warnings {
		set(fmt.Sprintf("A%d", 10+i), "Warning")
		set(fmt.Sprintf("B%d", 10+i), warning)
	}

	_ = file.SetColWidth(summarySheet, "A", "A", 28)
	_ = file.SetColWidth(summarySheet, "B", "B", 24)
}
