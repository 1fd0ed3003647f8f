package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/ledger"
)

// GetTripsView handles GET /views/trips.
//
// Query: start_date, end_date (YYYY-MM-DD), status, q, sort, order.
// Drivers only see trips assigned to them.
func (s *Server) GetTripsView(w http.ResponseWriter, r *http.Request) {
	filter, sort, err := parseViewQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := s.views.TripsView(r.Context(), filter, sort)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setWarningHeader(w, len(report.Warnings))
	writeJSON(w, r, http.StatusOK, report)
}

// GetExpensesView handles GET /views/expenses.
//
// Adds trip_id, driver_id, unit_id and type to the trips view parameters.
func (s *Server) GetExpensesView(w http.ResponseWriter, r *http.Request) {
	filter, sort, err := parseViewQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := s.views.ExpensesView(r.Context(), filter, sort)
	if err != nil {
		writeError(w, r, err)
		return
	}
	setWarningHeader(w, len(report.Warnings))
	writeJSON(w, r, http.StatusOK, report)
}

// parseViewQuery reads the shared filter and sort parameters. Unknown status,
// type, sort key or order values are validation errors. Malformed dates and
// IDs are bad requests.
func parseViewQuery(q url.Values) (ledger.FilterSpec, ledger.SortSpec, error) {
	var filter ledger.FilterSpec

	var start, end *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "start_date", q, &start); err != nil {
		return filter, ledger.SortSpec{}, badRequest("start_date must be YYYY-MM-DD")
	}
	if err := runtime.BindQueryParameter("form", true, false, "end_date", q, &end); err != nil {
		return filter, ledger.SortSpec{}, badRequest("end_date must be YYYY-MM-DD")
	}
	filter.StartDate = dateValue(start)
	filter.EndDate = dateValue(end)
	filter.Text = q.Get("q")

	if raw := strings.ToLower(strings.TrimSpace(q.Get("status"))); raw != "" && raw != "all" {
		status := domain.TripStatus(raw)
		if !status.Valid() {
			return filter, ledger.SortSpec{}, fmt.Errorf("%w: status must be upcoming, ongoing, completed or all", domain.ErrValidation)
		}
		filter.Status = status
	}
	if raw := strings.ToLower(strings.TrimSpace(q.Get("type"))); raw != "" {
		t := domain.TransactionType(raw)
		if !t.Valid() {
			return filter, ledger.SortSpec{}, fmt.Errorf("%w: type must be expense or income", domain.ErrValidation)
		}
		filter.Type = t
	}

	var err error
	if filter.TripID, err = queryID(q, "trip_id"); err != nil {
		return filter, ledger.SortSpec{}, err
	}
	if filter.DriverID, err = queryID(q, "driver_id"); err != nil {
		return filter, ledger.SortSpec{}, err
	}
	if filter.UnitID, err = queryID(q, "unit_id"); err != nil {
		return filter, ledger.SortSpec{}, err
	}

	sort, err := ledger.ParseSortSpec(q.Get("sort"), q.Get("order"))
	if err != nil {
		return filter, ledger.SortSpec{}, err
	}
	return filter, sort, nil
}

func queryID(q url.Values, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, badRequest(name + " must be a UUID")
	}
	return &id, nil
}

// setWarningHeader reports how many sources failed to load, so clients can
// flag a partial view without parsing the body.
func setWarningHeader(w http.ResponseWriter, n int) {
	if n > 0 {
		w.Header().Set("X-Load-Warnings", strconv.Itoa(n))
	}
}
