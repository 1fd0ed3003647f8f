package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/ledger"
	"github.com/pkordes/fleet-ledger/internal/service"
)

type mockTripsViewer struct {
	tripsView func(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (service.TripsReport, error)
}

func (m *mockTripsViewer) TripsView(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (service.TripsReport, error) {
	return m.tripsView(ctx, filter, sort)
}

var _ service.TripsViewer = (*mockTripsViewer)(nil)

func TestExportService_Export_ResolvesNamesAndTotals(t *testing.T) {
	driver := domain.Driver{ID: uuid.New(), Name: "Riley Fox"}
	unit := domain.Unit{ID: uuid.New(), Number: "U-44"}
	trip := lockedTrip()
	trip.DriverID = &driver.ID
	trip.UnitID = &unit.ID
	undated := domain.Trip{ID: uuid.New(), Name: "T-undated"}

	f := dashboardFixture{
		trips: []domain.Trip{trip, undated},
		txs: []domain.Transaction{
			expenseOn(trip.ID, "100", domain.CurrencyCAD),
			expenseOn(trip.ID, "50", domain.CurrencyUSD),
		},
		units:   []domain.Unit{unit},
		drivers: []domain.Driver{driver},
	}
	svc := service.NewExportService(f.service(t, time.Second, nil))

	report, err := svc.Export(asAdmin(), ledger.FilterSpec{}, ledger.SortSpec{Key: ledger.SortByName, Order: ledger.Ascending})

	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	row := report.Rows[0]
	assert.Equal(t, "T-locked", row.TripName)
	assert.Equal(t, "Riley Fox", row.DriverName)
	assert.Equal(t, "U-44", row.UnitNumber)
	assert.Equal(t, domain.TripStatusCompleted, row.Status)
	assert.True(t, row.Locked)
	assert.Equal(t, trip.StartDate.Format("2006-01-02"), row.StartDate)
	assert.True(t, row.GrandTotal.Equal(decimal.RequireFromString("167.5")))
	assert.Equal(t, 2, row.ExpenseCount)

	blank := report.Rows[1]
	assert.Empty(t, blank.StartDate)
	assert.Empty(t, blank.DriverName)
	assert.True(t, blank.UnknownDates)

	assert.True(t, report.GrandTotal.Equal(decimal.RequireFromString("167.5")))
	assert.Equal(t, domain.CurrencyCAD, report.PrimaryCurrency)
	assert.Equal(t, svcNow, report.GeneratedAt)
}

func TestExportService_Export_CarriesWarnings(t *testing.T) {
	svc := service.NewExportService(&mockTripsViewer{
		tripsView: func(context.Context, ledger.FilterSpec, ledger.SortSpec) (service.TripsReport, error) {
			return service.TripsReport{Warnings: []service.LoadWarning{{Source: service.SourceUnits, Message: "units could not be loaded"}}}, nil
		},
	})

	report, err := svc.Export(asAdmin(), ledger.FilterSpec{}, ledger.DefaultSort)

	require.NoError(t, err)
	assert.Equal(t, []string{"units could not be loaded"}, report.Warnings)
	assert.NotNil(t, report.Rows)
}

func TestExportService_Export_Error(t *testing.T) {
	boom := errors.New("boom")
	svc := service.NewExportService(&mockTripsViewer{
		tripsView: func(context.Context, ledger.FilterSpec, ledger.SortSpec) (service.TripsReport, error) {
			return service.TripsReport{}, boom
		},
	})

	_, err := svc.Export(asAdmin(), ledger.FilterSpec{}, ledger.DefaultSort)

	assert.ErrorIs(t, err, boom)
}
