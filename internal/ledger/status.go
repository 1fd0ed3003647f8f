package ledger

import (
	"time"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// LockWindow is how long after a trip's end date a driver may still edit the
// expenses booked against it.
const LockWindow = 24 * time.Hour

// Classification is a trip's status plus whether it had to be guessed.
type Classification struct {
	Status domain.TripStatus `json:"status"`
	// UnknownDates is set when the status was derived but a start or end date
	// was missing, so the trip was parked as upcoming.
	UnknownDates bool `json:"unknown_dates"`
}

// Classify derives the lifecycle state of trip at now.
//
// A stored status always wins, which lets an admin close a trip early. Without
// one the dates decide. Missing dates never fail; the trip is reported as
// upcoming with UnknownDates set.
func Classify(trip domain.Trip, now time.Time) Classification {
	if trip.Status != "" {
		return Classification{Status: trip.Status}
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return Classification{Status: domain.TripStatusUpcoming, UnknownDates: true}
	}
	switch {
	case now.Before(trip.StartDate):
		return Classification{Status: domain.TripStatusUpcoming}
	case now.After(trip.EndDate):
		return Classification{Status: domain.TripStatusCompleted}
	default:
		return Classification{Status: domain.TripStatusOngoing}
	}
}

// DeriveStatus is Classify without the unknown-dates flag.
func DeriveStatus(trip domain.Trip, now time.Time) domain.TripStatus {
	return Classify(trip, now).Status
}

// IsLocked reports whether the lock window after trip's end date has passed.
// It ignores the stored status. A trip without an end date is never locked.
func IsLocked(trip domain.Trip, now time.Time) bool {
	if trip.EndDate.IsZero() {
		return false
	}
	return now.After(trip.EndDate.Add(LockWindow))
}
