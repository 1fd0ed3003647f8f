package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing trip name, negative amount, unknown currency).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the caller's role does not allow the operation,
// e.g. a driver touching another driver's expense.
// Handlers map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrLocked is returned when a driver tries to change an expense on a completed
// trip whose 24h edit window has closed.
// Handlers map this to HTTP 409.
var ErrLocked = errors.New("trip is locked")

// ErrUnsupportedCurrencyPair is returned by the converter for a currency pair
// it has no rate for. It signals a programming error (a currency was added
// without teaching the converter about it) and must not be swallowed.
var ErrUnsupportedCurrencyPair = errors.New("unsupported currency pair")

// ErrReceiptUploadFailed is returned when both the primary receipt store and
// the inline fallback failed.
// Handlers map this to HTTP 502.
var ErrReceiptUploadFailed = errors.New("receipt upload failed")
