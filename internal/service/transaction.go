package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/ledger"
	"github.com/pkordes/fleet-ledger/internal/repo"
)

// TransactionService implements business logic for ledger transactions.
//
// Admins may do anything. Drivers may only touch their own transactions and
// may not change anything booked against a trip past its lock window.
type TransactionService struct {
	txs   repo.TransactionRepo
	trips repo.TripRepo
	now   func() time.Time
}

// NewTransactionService constructs a TransactionService. A nil clock means time.Now.
func NewTransactionService(txs repo.TransactionRepo, trips repo.TripRepo, clock func() time.Time) *TransactionService {
	if clock == nil {
		clock = time.Now
	}
	return &TransactionService{txs: txs, trips: trips, now: clock}
}

// Create validates and persists a transaction. A driver's transaction is
// always booked under their own driver ID.
func (s *TransactionService) Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	p, err := principal(ctx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Create: %w", err)
	}
	tx = normalizeTransaction(tx)
	if err := validateTransaction(tx); err != nil {
		return domain.Transaction{}, err
	}
	if p.IsDriver() {
		if tx.DriverID != nil && *tx.DriverID != p.DriverID {
			return domain.Transaction{}, fmt.Errorf("service.TransactionService.Create: %w: cannot book for another driver", domain.ErrForbidden)
		}
		tx.DriverID = &p.DriverID
	}
	if err := s.checkBooking(ctx, p, tx.TripID); err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Create: %w", err)
	}

	result, err := s.txs.Create(ctx, tx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a transaction. Drivers get domain.ErrNotFound for
// transactions they do not own, so IDs of other drivers' records do not leak.
func (s *TransactionService) GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	p, err := principal(ctx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.GetByID: %w", err)
	}
	tx, err := s.txs.GetByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.GetByID: %w", err)
	}
	if p.IsDriver() && !tx.OwnedBy(p.DriverID) {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.GetByID: %w", domain.ErrNotFound)
	}
	return tx, nil
}

// Update validates and persists changes to an existing transaction.
func (s *TransactionService) Update(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	p, err := principal(ctx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Update: %w", err)
	}
	tx = normalizeTransaction(tx)
	if err := validateTransaction(tx); err != nil {
		return domain.Transaction{}, err
	}

	current, err := s.txs.GetByID(ctx, tx.ID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Update: %w", err)
	}
	if err := s.checkMutable(ctx, p, current); err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Update: %w", err)
	}
	if p.IsDriver() {
		tx.DriverID = &p.DriverID
		// Moving the record onto another trip is a new booking on that trip.
		if !sameTrip(current.TripID, tx.TripID) {
			if err := s.checkBooking(ctx, p, tx.TripID); err != nil {
				return domain.Transaction{}, fmt.Errorf("service.TransactionService.Update: %w", err)
			}
		}
	}

	result, err := s.txs.Update(ctx, tx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("service.TransactionService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a transaction, subject to the same ownership and lock rules as Update.
func (s *TransactionService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := principal(ctx)
	if err != nil {
		return fmt.Errorf("service.TransactionService.Delete: %w", err)
	}
	current, err := s.txs.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TransactionService.Delete: %w", err)
	}
	if err := s.checkMutable(ctx, p, current); err != nil {
		return fmt.Errorf("service.TransactionService.Delete: %w", err)
	}
	if err := s.txs.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TransactionService.Delete: %w", err)
	}
	return nil
}

// AttachReceipt stores url on the transaction. It is an Update of one field.
func (s *TransactionService) AttachReceipt(ctx context.Context, id uuid.UUID, url string) (domain.Transaction, error) {
	tx, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, err
	}
	tx.ReceiptURL = url
	return s.Update(ctx, tx)
}

func (s *TransactionService) checkMutable(ctx context.Context, p domain.Principal, current domain.Transaction) error {
	if p.IsAdmin() {
		return nil
	}
	if !current.OwnedBy(p.DriverID) {
		return fmt.Errorf("%w: transaction belongs to another driver", domain.ErrForbidden)
	}
	return s.checkTrip(ctx, p, current.TripID)
}

// checkTrip verifies tripID exists and, for drivers, that it is still open.
func (s *TransactionService) checkTrip(ctx context.Context, p domain.Principal, tripID *uuid.UUID) error {
	if tripID == nil {
		return nil
	}
	trip, err := s.trip(ctx, *tripID)
	if err != nil {
		return err
	}
	return s.checkOpen(p, trip)
}

// checkBooking is checkTrip for a record being put onto tripID. Drivers may
// only book against trips assigned to them.
func (s *TransactionService) checkBooking(ctx context.Context, p domain.Principal, tripID *uuid.UUID) error {
	if tripID == nil {
		return nil
	}
	trip, err := s.trip(ctx, *tripID)
	if err != nil {
		return err
	}
	if p.IsDriver() && !trip.AssignedTo(p.DriverID) {
		return fmt.Errorf("%w: trip %s is not assigned to you", domain.ErrForbidden, trip.DisplayID())
	}
	return s.checkOpen(p, trip)
}

func (s *TransactionService) trip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Trip{}, fmt.Errorf("%w: trip %s does not exist", domain.ErrValidation, id)
		}
		return domain.Trip{}, err
	}
	return trip, nil
}

func (s *TransactionService) checkOpen(p domain.Principal, trip domain.Trip) error {
	if p.IsDriver() && ledger.IsLocked(trip, s.now()) {
		return fmt.Errorf("%w: trip %s closed more than 24h ago", domain.ErrLocked, trip.DisplayID())
	}
	return nil
}

func sameTrip(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func normalizeTransaction(tx domain.Transaction) domain.Transaction {
	tx.Category = strings.TrimSpace(tx.Category)
	tx.Description = strings.TrimSpace(tx.Description)
	tx.VendorName = strings.TrimSpace(tx.VendorName)
	tx.OriginalCurrency = domain.Currency(strings.ToUpper(strings.TrimSpace(string(tx.OriginalCurrency))))
	return tx
}

func validateTransaction(tx domain.Transaction) error {
	if !tx.Type.Valid() {
		return fmt.Errorf("%w: type must be expense or income", domain.ErrValidation)
	}
	if tx.Category == "" {
		return fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if tx.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if !tx.OriginalCurrency.Valid() {
		return fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, tx.OriginalCurrency)
	}
	if tx.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}

// principal returns the caller from ctx. Requests without one never reach a
// service through the router, so its absence is a forbidden call.
func principal(ctx context.Context) (domain.Principal, error) {
	p, ok := domain.PrincipalFrom(ctx)
	if !ok {
		return domain.Principal{}, fmt.Errorf("%w: no principal", domain.ErrForbidden)
	}
	return p, nil
}
