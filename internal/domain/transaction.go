package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money spent from money received.
type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionIncome  TransactionType = "income"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionExpense || t == TransactionIncome
}

// Transaction is a single ledger entry. Amount is always non-negative and
// always in OriginalCurrency; converted figures are computed on read and never
// written back.
type Transaction struct {
	ID               uuid.UUID       `json:"id"`
	Type             TransactionType `json:"type"`
	Category         string          `json:"category"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	OriginalCurrency Currency        `json:"original_currency"`
	Date             time.Time       `json:"date"`
	TripID           *uuid.UUID      `json:"trip_id,omitempty"`
	UnitID           *uuid.UUID      `json:"unit_id,omitempty"`
	DriverID         *uuid.UUID      `json:"driver_id,omitempty"`
	VendorName       string          `json:"vendor_name,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	ReceiptURL       string          `json:"receipt_url,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsExpense reports whether the transaction is an expense.
func (t Transaction) IsExpense() bool { return t.Type == TransactionExpense }

// OwnedBy reports whether the transaction was booked by the given driver.
func (t Transaction) OwnedBy(driverID uuid.UUID) bool {
	return t.DriverID != nil && *t.DriverID == driverID
}
