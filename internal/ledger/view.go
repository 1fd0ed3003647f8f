package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// Snapshot is everything a single render pass treats as constant. Capture it
// once per request so the status filter, the status sort key and the status
// badge all agree.
type Snapshot struct {
	Now     time.Time              `json:"now"`
	Rates   domain.ExchangeRateSet `json:"rates"`
	Primary domain.Currency        `json:"primary_currency"`
}

// TripRow is one line of the trips view.
type TripRow struct {
	Trip domain.Trip `json:"trip"`
	Classification
	Locked bool           `json:"locked"`
	Totals AggregateTotal `json:"totals"`
}

// TripsView is the filtered, sorted trip list with per-trip expense totals.
// Totals covers exactly the expenses of the listed rows.
type TripsView struct {
	Rows     []TripRow      `json:"rows"`
	Totals   AggregateTotal `json:"totals"`
	Snapshot Snapshot       `json:"snapshot"`
}

// ExpensesView is the filtered, sorted transaction list and its totals.
type ExpensesView struct {
	Transactions []domain.Transaction `json:"transactions"`
	Totals       AggregateTotal       `json:"totals"`
	Snapshot     Snapshot             `json:"snapshot"`
}

// AssembleTrips runs filter, then sort, then aggregate over trips and returns
// the result as a view. txs may contain records for trips that are filtered
// out; they do not reach any total.
func AssembleTrips(trips []domain.Trip, txs []domain.Transaction, filter FilterSpec, sort SortSpec, snap Snapshot) (TripsView, error) {
	visible := SortTrips(FilterTrips(trips, filter, snap.Now), sort, snap.Now)
	byTrip := groupByTrip(txs)

	rows := make([]TripRow, 0, len(visible))
	var shown []domain.Transaction
	for _, t := range visible {
		own := byTrip[t.ID]
		totals, err := Aggregate(own, snap.Rates, snap.Primary)
		if err != nil {
			return TripsView{}, fmt.Errorf("ledger.AssembleTrips: trip %s: %w", t.ID, err)
		}
		rows = append(rows, TripRow{
			Trip:           t,
			Classification: Classify(t, snap.Now),
			Locked:         IsLocked(t, snap.Now),
			Totals:         totals,
		})
		shown = append(shown, own...)
	}

	overall, err := Aggregate(shown, snap.Rates, snap.Primary)
	if err != nil {
		return TripsView{}, fmt.Errorf("ledger.AssembleTrips: %w", err)
	}
	return TripsView{Rows: rows, Totals: overall, Snapshot: snap}, nil
}

// AssembleExpenses runs filter, then sort, then aggregate over txs.
func AssembleExpenses(txs []domain.Transaction, filter FilterSpec, sort SortSpec, snap Snapshot) (ExpensesView, error) {
	visible := SortTransactions(FilterTransactions(txs, filter), sort)
	totals, err := Aggregate(visible, snap.Rates, snap.Primary)
	if err != nil {
		return ExpensesView{}, fmt.Errorf("ledger.AssembleExpenses: %w", err)
	}
	return ExpensesView{Transactions: visible, Totals: totals, Snapshot: snap}, nil
}

func groupByTrip(txs []domain.Transaction) map[uuid.UUID][]domain.Transaction {
	out := make(map[uuid.UUID][]domain.Transaction)
	for _, tx := range txs {
		if tx.TripID == nil {
			continue
		}
		out[*tx.TripID] = append(out[*tx.TripID], tx)
	}
	return out
}
