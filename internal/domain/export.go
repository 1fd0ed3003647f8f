package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExportRow is one trip in a trips export: a flat, denormalized line with the
// driver and unit resolved to display names and the trip's expense totals.
type ExportRow struct {
	TripID      string
	TripName    string
	Origin      string
	Destination string
	StartDate   string // "2006-01-02", empty when unknown
	EndDate     string // "2006-01-02", empty when unknown
	Status      TripStatus
	// UnknownDates marks a status that fell back to upcoming for lack of dates.
	UnknownDates  bool
	Locked        bool
	DriverName    string
	UnitNumber    string
	DistanceMiles float64

	ExpensesCAD  decimal.Decimal
	ExpensesUSD  decimal.Decimal
	GrandTotal   decimal.Decimal
	ExpenseCount int
}

// ExportReport is everything a renderer needs: the rows, their totals, and
// the snapshot they were computed against.
type ExportReport struct {
	GeneratedAt     time.Time
	PrimaryCurrency Currency
	Rates           ExchangeRateSet
	Rows            []ExportRow

	TotalCAD   decimal.Decimal
	TotalUSD   decimal.Decimal
	GrandTotal decimal.Decimal
	// Warnings lists data sources that could not be loaded.
	Warnings []string
}
