package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// TransactionRepo defines the persistence operations for ledger transactions.
// Amounts are stored as NUMERIC and round-trip through decimal.Decimal unchanged.
type TransactionRepo interface {
	Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)

	// GetByID returns domain.ErrNotFound if no transaction with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error)

	// List returns every transaction ordered by date descending.
	List(ctx context.Context) ([]domain.Transaction, error)

	// Update overwrites the mutable fields. Returns domain.ErrNotFound if missing.
	Update(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)

	// Delete returns domain.ErrNotFound if no transaction with that ID exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTransactionRepo struct {
	db db
}

// NewTransactionRepo constructs a TransactionRepo backed by the provided db connection.
func NewTransactionRepo(db db) TransactionRepo {
	return &pgTransactionRepo{db: db}
}

const transactionColumns = `id, type, category, description, amount, original_currency, date,
	trip_id, unit_id, driver_id, vendor_name, notes, receipt_url, created_at, updated_at`

func transactionArgs(tx domain.Transaction) pgx.NamedArgs {
	return pgx.NamedArgs{
		"type":              string(tx.Type),
		"category":          tx.Category,
		"description":       tx.Description,
		"amount":            tx.Amount,
		"original_currency": string(tx.OriginalCurrency),
		"date":              tx.Date,
		"trip_id":           nullUUID(tx.TripID),
		"unit_id":           nullUUID(tx.UnitID),
		"driver_id":         nullUUID(tx.DriverID),
		"vendor_name":       tx.VendorName,
		"notes":             tx.Notes,
		"receipt_url":       tx.ReceiptURL,
	}
}

func (r *pgTransactionRepo) Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	q := `
		INSERT INTO transactions (type, category, description, amount, original_currency, date,
		                          trip_id, unit_id, driver_id, vendor_name, notes, receipt_url)
		VALUES (@type, @category, @description, @amount, @original_currency, @date,
		        @trip_id, @unit_id, @driver_id, @vendor_name, @notes, @receipt_url)
		RETURNING ` + transactionColumns

	result, err := scanTransaction(r.db.QueryRow(ctx, q, transactionArgs(tx)))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("repo.TransactionRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	q := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = @id`

	result, err := scanTransaction(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("repo.TransactionRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTransactionRepo) List(ctx context.Context) ([]domain.Transaction, error) {
	q := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TransactionRepo.List: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TransactionRepo.List: scan: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TransactionRepo.List: rows: %w", err)
	}
	return txs, nil
}

func (r *pgTransactionRepo) Update(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	q := `
		UPDATE transactions
		SET type              = @type,
		    category          = @category,
		    description       = @description,
		    amount            = @amount,
		    original_currency = @original_currency,
		    date              = @date,
		    trip_id           = @trip_id,
		    unit_id           = @unit_id,
		    driver_id         = @driver_id,
		    vendor_name       = @vendor_name,
		    notes             = @notes,
		    receipt_url       = @receipt_url,
		    updated_at        = now()
		WHERE id = @id
		RETURNING ` + transactionColumns

	args := transactionArgs(tx)
	args["id"] = tx.ID

	result, err := scanTransaction(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("repo.TransactionRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM transactions WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TransactionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TransactionRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTransaction maps a row into a domain.Transaction. decimal.Decimal
// implements sql.Scanner, so NUMERIC scans without a float round-trip.
func scanTransaction(s scanner) (domain.Transaction, error) {
	var (
		tx                       domain.Transaction
		id                       pgtype.UUID
		txType, currency         string
		tripID, unitID, driverID pgtype.UUID
	)

	err := s.Scan(&id, &txType, &tx.Category, &tx.Description, &tx.Amount, &currency, &tx.Date,
		&tripID, &unitID, &driverID, &tx.VendorName, &tx.Notes, &tx.ReceiptURL, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Transaction{}, domain.ErrNotFound
		}
		return domain.Transaction{}, err
	}

	tx.ID = uuid.UUID(id.Bytes)
	tx.Type = domain.TransactionType(txType)
	tx.OriginalCurrency = domain.Currency(currency)
	tx.TripID = fromUUID(tripID)
	tx.UnitID = fromUUID(unitID)
	tx.DriverID = fromUUID(driverID)
	return tx, nil
}
