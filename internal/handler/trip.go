package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
// Dates are calendar days.
type TripRequest struct {
	Name          string              `json:"name"`
	Origin        string              `json:"origin"`
	Destination   string              `json:"destination"`
	StartDate     *openapi_types.Date `json:"start_date"`
	EndDate       *openapi_types.Date `json:"end_date"`
	DistanceMiles float64             `json:"distance_miles"`
	UnitID        *uuid.UUID          `json:"unit_id"`
	DriverID      *uuid.UUID          `json:"driver_id"`
	CargoDetails  string              `json:"cargo_details"`
	Notes         string              `json:"notes"`
	Status        domain.TripStatus   `json:"status"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.trips.Create(r.Context(), requestToTrip(uuid.Nil, body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		writeError(w, r, badRequest("page must be an integer"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		writeError(w, r, badRequest("limit must be an integer"))
		return
	}

	result, err := s.trips.ListPaged(r.Context(), domain.NewPaginationParams(page, limit))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, result)
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, trip)
}

// UpdateTrip handles PUT /trips/{id}. The body replaces the whole trip.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body TripRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.trips.Update(r.Context(), requestToTrip(id, body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /trips/{id}. Its transactions go with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.trips.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requestToTrip converts a TripRequest into a domain.Trip. Status is
// lower-cased so "Completed" and "completed" mean the same override.
func requestToTrip(id uuid.UUID, body TripRequest) domain.Trip {
	return domain.Trip{
		ID:            id,
		Name:          body.Name,
		Origin:        body.Origin,
		Destination:   body.Destination,
		StartDate:     dateValue(body.StartDate),
		EndDate:       dateValue(body.EndDate),
		DistanceMiles: body.DistanceMiles,
		UnitID:        body.UnitID,
		DriverID:      body.DriverID,
		CargoDetails:  body.CargoDetails,
		Notes:         body.Notes,
		Status:        domain.TripStatus(strings.ToLower(strings.TrimSpace(string(body.Status)))),
	}
}
