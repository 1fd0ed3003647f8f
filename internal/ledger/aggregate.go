package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// AggregateTotal is the expense total of a set of transactions.
//
// CAD and USD are as-booked sums: plain additions of the original amounts, so
// they reconcile exactly with the records. GrandTotal is both sums converted
// into PrimaryCurrency. It is a view and is never persisted.
type AggregateTotal struct {
	CAD             decimal.Decimal `json:"cad"`
	USD             decimal.Decimal `json:"usd"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	PrimaryCurrency domain.Currency `json:"primary_currency"`
	Count           int             `json:"count"`
}

// Booked returns the as-booked sum for c.
func (a AggregateTotal) Booked(c domain.Currency) decimal.Decimal {
	switch c {
	case domain.CurrencyCAD:
		return a.CAD
	case domain.CurrencyUSD:
		return a.USD
	}
	return decimal.Zero
}

// Aggregate totals the expenses in txs. Income entries are skipped here, not
// by the caller. The result does not care who owns the records; narrow the
// input first with ForTrip, ForDriver or ForUnit.
//
// An empty input yields an all-zero total. An error is returned only for a
// currency the converter cannot handle.
func Aggregate(txs []domain.Transaction, rates domain.ExchangeRateSet, primary domain.Currency) (AggregateTotal, error) {
	total := AggregateTotal{
		CAD:             decimal.Zero,
		USD:             decimal.Zero,
		GrandTotal:      decimal.Zero,
		PrimaryCurrency: primary,
	}

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}
		switch tx.OriginalCurrency {
		case domain.CurrencyCAD:
			total.CAD = total.CAD.Add(tx.Amount)
		case domain.CurrencyUSD:
			total.USD = total.USD.Add(tx.Amount)
		default:
			return AggregateTotal{}, fmt.Errorf("ledger.Aggregate: transaction %s: %w: %s to %s",
				tx.ID, domain.ErrUnsupportedCurrencyPair, tx.OriginalCurrency, primary)
		}
		total.Count++
	}

	cad, err := Convert(total.CAD, domain.CurrencyCAD, primary, rates)
	if err != nil {
		return AggregateTotal{}, fmt.Errorf("ledger.Aggregate: %w", err)
	}
	usd, err := Convert(total.USD, domain.CurrencyUSD, primary, rates)
	if err != nil {
		return AggregateTotal{}, fmt.Errorf("ledger.Aggregate: %w", err)
	}
	total.GrandTotal = cad.Add(usd)

	return total, nil
}
