package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// StatusAll disables the status predicate.
const StatusAll domain.TripStatus = "all"

// FilterSpec is a set of optional, conjunctive predicates. A zero field
// contributes no constraint.
type FilterSpec struct {
	// StartDate keeps records on or after local midnight of this day.
	StartDate time.Time
	// EndDate keeps records on or before 23:59:59.999 of this day.
	EndDate time.Time
	// Status is "", StatusAll, or one of the trip statuses. Trips only.
	Status domain.TripStatus
	// Text is a case-insensitive substring search.
	Text string

	TripID   *uuid.UUID
	DriverID *uuid.UUID
	UnitID   *uuid.UUID
	// Type restricts transactions to expenses or income.
	Type domain.TransactionType
}

// FilterTrips returns the trips that satisfy every active predicate of spec,
// in input order. The input slice is not modified.
//
// Date bounds apply to StartDate (lower) and EndDate (upper); a trip missing
// the date a bound needs is dropped. The status predicate compares against
// DeriveStatus at now.
func FilterTrips(trips []domain.Trip, spec FilterSpec, now time.Time) []domain.Trip {
	lower, upper := spec.bounds()
	needle := normalizeNeedle(spec.Text)

	out := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if !lower.IsZero() && (t.StartDate.IsZero() || t.StartDate.Before(lower)) {
			continue
		}
		if !upper.IsZero() && (t.EndDate.IsZero() || t.EndDate.After(upper)) {
			continue
		}
		if spec.Status != "" && spec.Status != StatusAll && DeriveStatus(t, now) != spec.Status {
			continue
		}
		if needle != "" && !containsFold(t.DisplayID(), needle) {
			continue
		}
		if spec.TripID != nil && t.ID != *spec.TripID {
			continue
		}
		if spec.DriverID != nil && !matchID(t.DriverID, *spec.DriverID) {
			continue
		}
		if spec.UnitID != nil && !matchID(t.UnitID, *spec.UnitID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// FilterTransactions is the transaction counterpart of FilterTrips. Both
// date bounds apply to Date; the status predicate does not apply.
// Free text matches description, vendor and category.
func FilterTransactions(txs []domain.Transaction, spec FilterSpec) []domain.Transaction {
	lower, upper := spec.bounds()
	needle := normalizeNeedle(spec.Text)

	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if (!lower.IsZero() || !upper.IsZero()) && tx.Date.IsZero() {
			continue
		}
		if !lower.IsZero() && tx.Date.Before(lower) {
			continue
		}
		if !upper.IsZero() && tx.Date.After(upper) {
			continue
		}
		if spec.Type != "" && tx.Type != spec.Type {
			continue
		}
		if needle != "" &&
			!containsFold(tx.Description, needle) &&
			!containsFold(tx.VendorName, needle) &&
			!containsFold(tx.Category, needle) {
			continue
		}
		if spec.TripID != nil && !matchID(tx.TripID, *spec.TripID) {
			continue
		}
		if spec.DriverID != nil && !matchID(tx.DriverID, *spec.DriverID) {
			continue
		}
		if spec.UnitID != nil && !matchID(tx.UnitID, *spec.UnitID) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// ForTrip returns the transactions booked against tripID.
func ForTrip(txs []domain.Transaction, tripID uuid.UUID) []domain.Transaction {
	return FilterTransactions(txs, FilterSpec{TripID: &tripID})
}

// ForDriver returns the transactions booked by driverID.
func ForDriver(txs []domain.Transaction, driverID uuid.UUID) []domain.Transaction {
	return FilterTransactions(txs, FilterSpec{DriverID: &driverID})
}

// ForUnit returns the transactions booked against unitID.
func ForUnit(txs []domain.Transaction, unitID uuid.UUID) []domain.Transaction {
	return FilterTransactions(txs, FilterSpec{UnitID: &unitID})
}

// bounds normalizes the date range to whole days in each bound's own location.
func (s FilterSpec) bounds() (lower, upper time.Time) {
	if !s.StartDate.IsZero() {
		y, m, d := s.StartDate.Date()
		lower = time.Date(y, m, d, 0, 0, 0, 0, s.StartDate.Location())
	}
	if !s.EndDate.IsZero() {
		y, m, d := s.EndDate.Date()
		upper = time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), s.EndDate.Location())
	}
	return lower, upper
}

func normalizeNeedle(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}

func matchID(have *uuid.UUID, want uuid.UUID) bool {
	return have != nil && *have == want
}
