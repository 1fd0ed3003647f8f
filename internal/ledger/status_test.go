package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/ledger"
)

// fixedNow is the clock every ledger test runs against.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tripBetween(start, end time.Time) domain.Trip {
	return domain.Trip{Name: "T-100", StartDate: start, EndDate: end}
}

// Scenario A: yesterday..tomorrow with no stored status is ongoing today.
func TestDeriveStatus_OngoingBetweenDates(t *testing.T) {
	trip := tripBetween(fixedNow.AddDate(0, 0, -1), fixedNow.AddDate(0, 0, 1))

	assert.Equal(t, domain.TripStatusOngoing, ledger.DeriveStatus(trip, fixedNow))
}

func TestDeriveStatus_Upcoming(t *testing.T) {
	trip := tripBetween(fixedNow.Add(time.Hour), fixedNow.AddDate(0, 0, 3))

	assert.Equal(t, domain.TripStatusUpcoming, ledger.DeriveStatus(trip, fixedNow))
}

func TestDeriveStatus_Completed(t *testing.T) {
	trip := tripBetween(fixedNow.AddDate(0, 0, -5), fixedNow.Add(-time.Minute))

	assert.Equal(t, domain.TripStatusCompleted, ledger.DeriveStatus(trip, fixedNow))
}

func TestDeriveStatus_BoundariesAreOngoing(t *testing.T) {
	assert.Equal(t, domain.TripStatusOngoing,
		ledger.DeriveStatus(tripBetween(fixedNow, fixedNow.Add(time.Hour)), fixedNow), "now == start")
	assert.Equal(t, domain.TripStatusOngoing,
		ledger.DeriveStatus(tripBetween(fixedNow.Add(-time.Hour), fixedNow), fixedNow), "now == end")
}

// Calendar-day trips are stored at UTC midnight, so a one-day trip is
// completed for the rest of its day but still inside the lock window.
func TestDeriveStatus_OneDayTripAtMidnight(t *testing.T) {
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	trip := tripBetween(day, day)

	assert.Equal(t, domain.TripStatusCompleted, ledger.DeriveStatus(trip, fixedNow))
	assert.False(t, ledger.IsLocked(trip, fixedNow))
}

func TestDeriveStatus_StoredStatusWins(t *testing.T) {
	trip := tripBetween(fixedNow.AddDate(0, 0, -1), fixedNow.AddDate(0, 0, 1))
	trip.Status = domain.TripStatusCompleted

	c := ledger.Classify(trip, fixedNow)

	assert.Equal(t, domain.TripStatusCompleted, c.Status)
	assert.False(t, c.UnknownDates)
}

func TestClassify_MissingDatesAreUpcomingAndFlagged(t *testing.T) {
	cases := map[string]domain.Trip{
		"no start": {EndDate: fixedNow.AddDate(0, 0, -10)},
		"no end":   {StartDate: fixedNow.AddDate(0, 0, -10)},
		"neither":  {},
	}
	for name, trip := range cases {
		t.Run(name, func(t *testing.T) {
			c := ledger.Classify(trip, fixedNow)

			assert.Equal(t, domain.TripStatusUpcoming, c.Status)
			assert.True(t, c.UnknownDates)
		})
	}
}

func TestDeriveStatus_Deterministic(t *testing.T) {
	trip := tripBetween(fixedNow.AddDate(0, 0, -2), fixedNow.AddDate(0, 0, -1))

	first := ledger.DeriveStatus(trip, fixedNow)
	second := ledger.DeriveStatus(trip, fixedNow)

	assert.Equal(t, first, second)
}

// Scenario E: the lock window closes 24h after the end date.
func TestIsLocked_LockWindow(t *testing.T) {
	start := fixedNow.AddDate(0, 0, -7)

	assert.True(t, ledger.IsLocked(tripBetween(start, fixedNow.Add(-25*time.Hour)), fixedNow))
	assert.False(t, ledger.IsLocked(tripBetween(start, fixedNow.Add(-23*time.Hour)), fixedNow))
}

func TestIsLocked_IgnoresStoredStatus(t *testing.T) {
	trip := tripBetween(fixedNow.AddDate(0, 0, -7), fixedNow.Add(-48*time.Hour))
	trip.Status = domain.TripStatusOngoing

	assert.True(t, ledger.IsLocked(trip, fixedNow))
}

func TestIsLocked_UnknownEndNeverLocks(t *testing.T) {
	assert.False(t, ledger.IsLocked(domain.Trip{StartDate: fixedNow.AddDate(-1, 0, 0)}, fixedNow))
}
