// Package domain contains the core data types for the Fleet Ledger application.
// It is imported by every other internal package (ledger, repo, service, handler)
// and depends only on uuid and decimal.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripStatusUpcoming  TripStatus = "upcoming"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
)

// Valid reports whether s is one of the three known statuses.
// The empty status is not valid; it means "derive from dates".
func (s TripStatus) Valid() bool {
	switch s {
	case TripStatusUpcoming, TripStatusOngoing, TripStatusCompleted:
		return true
	}
	return false
}

// Trip is a single haul logged by an admin and assigned to a driver and unit.
//
// StartDate and EndDate use the zero time.Time for "unknown"; records are
// normalized to that sentinel at the repo boundary so the ledger never sees nil.
// Status is optional: when empty it is derived from the dates at read time.
type Trip struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Origin        string     `json:"origin,omitempty"`
	Destination   string     `json:"destination,omitempty"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       time.Time  `json:"end_date"`
	DistanceMiles float64    `json:"distance_miles"`
	UnitID        *uuid.UUID `json:"unit_id,omitempty"`
	DriverID      *uuid.UUID `json:"driver_id,omitempty"`
	CargoDetails  string     `json:"cargo_details,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Status        TripStatus `json:"status,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// DisplayID is the identifier shown in lists and matched by free-text search.
// Admins name trips by their trip number, so the name is used when present.
func (t Trip) DisplayID() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID.String()
}

// AssignedTo reports whether the trip is assigned to the given driver.
func (t Trip) AssignedTo(driverID uuid.UUID) bool {
	return t.DriverID != nil && *t.DriverID == driverID
}

// MarshalJSON writes unknown dates as null instead of the zero time.
func (t Trip) MarshalJSON() ([]byte, error) {
	type plain Trip
	return json.Marshal(struct {
		plain
		StartDate *time.Time `json:"start_date"`
		EndDate   *time.Time `json:"end_date"`
	}{plain(t), optionalTime(t.StartDate), optionalTime(t.EndDate)})
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
