package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code the ledger knows how to book and convert.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{CurrencyCAD, CurrencyUSD}

// ParseCurrency normalizes raw (trimmed, upper-cased) and checks it is supported.
func ParseCurrency(raw string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unsupported currency %q", ErrValidation, raw)
	}
	return c, nil
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyCAD
}

// ExchangeRateSet holds the two configured conversion rates.
//
// The rates are supplied independently and are not required to be
// reciprocals of each other. Conversions always use the rate of the source
// currency; one rate is never derived by inverting the other.
type ExchangeRateSet struct {
	CADToUSD decimal.Decimal `json:"cad_to_usd"`
	USDToCAD decimal.Decimal `json:"usd_to_cad"`
}

// Validate checks that both rates are strictly positive.
func (r ExchangeRateSet) Validate() error {
	if !r.CADToUSD.IsPositive() {
		return fmt.Errorf("%w: cad_to_usd must be > 0", ErrValidation)
	}
	if !r.USDToCAD.IsPositive() {
		return fmt.Errorf("%w: usd_to_cad must be > 0", ErrValidation)
	}
	return nil
}
