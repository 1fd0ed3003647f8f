package handler

import (
	"net/http"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// UnitRequest is the body of POST /units.
type UnitRequest struct {
	Number string `json:"number"`
	Make   string `json:"make"`
	Model  string `json:"model"`
	Plate  string `json:"plate"`
}

// DriverRequest is the body of POST /drivers.
type DriverRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ListUnits handles GET /units.
func (s *Server) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.fleet.ListUnits(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, units)
}

// CreateUnit handles POST /units.
func (s *Server) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var body UnitRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.fleet.CreateUnit(r.Context(), domain.Unit{
		Number: body.Number, Make: body.Make, Model: body.Model, Plate: body.Plate,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// ListDrivers handles GET /drivers.
func (s *Server) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := s.fleet.ListDrivers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, drivers)
}

// CreateDriver handles POST /drivers.
func (s *Server) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var body DriverRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.fleet.CreateDriver(r.Context(), domain.Driver{Name: body.Name, Email: body.Email, Phone: body.Phone})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}
