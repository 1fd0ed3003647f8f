package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/handler"
	"github.com/pkordes/fleet-ledger/internal/ledger"
	"github.com/pkordes/fleet-ledger/internal/service"
)

func TestGetTripsView_parsesFilterAndSort(t *testing.T) {
	var gotFilter ledger.FilterSpec
	var gotSort ledger.SortSpec
	views := &mockViewServicer{tripsView: func(_ context.Context, f ledger.FilterSpec, s ledger.SortSpec) (service.TripsReport, error) {
		gotFilter, gotSort = f, s
		return service.TripsReport{}, nil
	}}

	rec := do(newHTTPHandler(handler.Deps{Views: views}, driverPrincipal), http.MethodGet,
		"/views/trips?start_date=2025-06-01&end_date=2025-06-30&status=Completed&q=albany&sort=distance&order=asc", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), gotFilter.StartDate)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), gotFilter.EndDate)
	assert.Equal(t, domain.TripStatusCompleted, gotFilter.Status)
	assert.Equal(t, "albany", gotFilter.Text)
	assert.Equal(t, ledger.SortSpec{Key: ledger.SortByDistance, Order: ledger.Ascending}, gotSort)
}

func TestGetTripsView_defaults(t *testing.T) {
	var gotFilter ledger.FilterSpec
	var gotSort ledger.SortSpec
	views := &mockViewServicer{tripsView: func(_ context.Context, f ledger.FilterSpec, s ledger.SortSpec) (service.TripsReport, error) {
		gotFilter, gotSort = f, s
		return service.TripsReport{}, nil
	}}

	rec := do(newHTTPHandler(handler.Deps{Views: views}, adminPrincipal), http.MethodGet, "/views/trips?status=all", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ledger.FilterSpec{}, gotFilter)
	assert.Equal(t, ledger.DefaultSort, gotSort)
}

func TestGetTripsView_rejectsBadParams(t *testing.T) {
	views := &mockViewServicer{tripsView: func(context.Context, ledger.FilterSpec, ledger.SortSpec) (service.TripsReport, error) {
		t.Fatal("service must not be called")
		return service.TripsReport{}, nil
	}}
	h := newHTTPHandler(handler.Deps{Views: views}, adminPrincipal)

	cases := map[string]int{
		"/views/trips?start_date=06/01/2025": http.StatusBadRequest,
		"/views/trips?status=paused":         http.StatusUnprocessableEntity,
		"/views/trips?sort=colour":           http.StatusUnprocessableEntity,
		"/views/trips?order=sideways":        http.StatusUnprocessableEntity,
	}
	for target, status := range cases {
		assert.Equal(t, status, do(h, http.MethodGet, target, nil).Code, target)
	}
}

func TestGetTripsView_flagsLoadWarnings(t *testing.T) {
	views := &mockViewServicer{tripsView: func(context.Context, ledger.FilterSpec, ledger.SortSpec) (service.TripsReport, error) {
		return service.TripsReport{Warnings: []service.LoadWarning{{Source: service.SourceUnits, Message: "timeout"}}}, nil
	}}

	rec := do(newHTTPHandler(handler.Deps{Views: views}, adminPrincipal), http.MethodGet, "/views/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-Load-Warnings"))
	assert.Contains(t, rec.Body.String(), `"source":"units"`)
}

func TestGetExpensesView_parsesOwnerFilters(t *testing.T) {
	tripID, unitID := uuid.New(), uuid.New()
	var got ledger.FilterSpec
	views := &mockViewServicer{expensesView: func(_ context.Context, f ledger.FilterSpec, _ ledger.SortSpec) (service.ExpensesReport, error) {
		got = f
		return service.ExpensesReport{}, nil
	}}
	h := newHTTPHandler(handler.Deps{Views: views}, adminPrincipal)

	rec := do(h, http.MethodGet, "/views/expenses?trip_id="+tripID.String()+"&unit_id="+unitID.String()+"&type=expense&sort=amount", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.TripID)
	assert.Equal(t, tripID, *got.TripID)
	require.NotNil(t, got.UnitID)
	assert.Equal(t, unitID, *got.UnitID)
	assert.Nil(t, got.DriverID)
	assert.Equal(t, domain.TransactionExpense, got.Type)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodGet, "/views/expenses?driver_id=riley", nil).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(h, http.MethodGet, "/views/expenses?type=refund", nil).Code)
}
