// Package ledger holds the derived-view computations shared by every screen and
// export: currency conversion, trip status classification, expense
// aggregation, and the filter/sort pipeline.
//
// Everything here is a pure function of its arguments. There is no I/O, no
// package-level mutable state, and no implicit clock: callers capture "now"
// once per request in a Snapshot and pass it down.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// Convert expresses amount (booked in from) in the to currency.
//
// Same-currency conversion returns amount untouched. Otherwise the rate that
// matches the source currency is applied. No rounding happens here.
func Convert(amount decimal.Decimal, from, to domain.Currency, rates domain.ExchangeRateSet) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	switch {
	case from == domain.CurrencyCAD && to == domain.CurrencyUSD:
		return amount.Mul(rates.CADToUSD), nil
	case from == domain.CurrencyUSD && to == domain.CurrencyCAD:
		return amount.Mul(rates.USDToCAD), nil
	}
	return decimal.Zero, fmt.Errorf("ledger.Convert: %w: %s to %s", domain.ErrUnsupportedCurrencyPair, from, to)
}
