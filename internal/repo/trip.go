// Package repo contains all database access logic for the Fleet Ledger API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns every trip ordered by start_date descending, undated trips last.
	// The views filter and sort in memory, so this is the full set.
	List(ctx context.Context) ([]domain.Trip, error)

	// ListPaged returns one page of trips in List order and the total row count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, origin, destination, start_date, end_date, distance_miles,
	unit_id, driver_id, cargo_details, notes, status, created_at, updated_at`

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":           trip.Name,
		"origin":         trip.Origin,
		"destination":    trip.Destination,
		"start_date":     nullTime(trip.StartDate),
		"end_date":       nullTime(trip.EndDate),
		"distance_miles": trip.DistanceMiles,
		"unit_id":        nullUUID(trip.UnitID),
		"driver_id":      nullUUID(trip.DriverID),
		"cargo_details":  trip.CargoDetails,
		"notes":          trip.Notes,
		"status":         nullString(string(trip.Status)),
	}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		INSERT INTO trips (name, origin, destination, start_date, end_date, distance_miles,
		                   unit_id, driver_id, cargo_details, notes, status)
		VALUES (@name, @origin, @destination, @start_date, @end_date, @distance_miles,
		        @unit_id, @driver_id, @cargo_details, @notes, @status)
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	q := `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC NULLS LAST, created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// ListPaged uses a window count so the page and the total come from one snapshot.
func (r *pgTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	q := `
		SELECT ` + tripColumns + `, COUNT(*) OVER () AS total
		FROM trips
		ORDER BY start_date DESC NULLS LAST, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	var total int64
	trips := []domain.Trip{}
	for rows.Next() {
		t, err := scanTripWith(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripRepo.ListPaged: rows: %w", err)
	}
	return trips, total, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	q := `
		UPDATE trips
		SET name           = @name,
		    origin         = @origin,
		    destination    = @destination,
		    start_date     = @start_date,
		    end_date       = @end_date,
		    distance_miles = @distance_miles,
		    unit_id        = @unit_id,
		    driver_id      = @driver_id,
		    cargo_details  = @cargo_details,
		    notes          = @notes,
		    status         = @status,
		    updated_at     = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := tripArgs(trip)
	args["id"] = trip.ID

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTrip(s scanner) (domain.Trip, error) {
	return scanTripWith(s)
}

// scanTripWith scans the trip columns followed by any extra destinations.
// Nullable dates come back as the zero time, which the ledger treats as unknown.
func scanTripWith(s scanner, extra ...any) (domain.Trip, error) {
	var (
		t          domain.Trip
		id         pgtype.UUID
		start, end pgtype.Timestamptz
		unitID     pgtype.UUID
		driverID   pgtype.UUID
		status     pgtype.Text
	)

	dest := []any{
		&id, &t.Name, &t.Origin, &t.Destination, &start, &end, &t.DistanceMiles,
		&unitID, &driverID, &t.CargoDetails, &t.Notes, &status, &t.CreatedAt, &t.UpdatedAt,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = fromTimestamptz(start)
	t.EndDate = fromTimestamptz(end)
	t.UnitID = fromUUID(unitID)
	t.DriverID = fromUUID(driverID)
	if status.Valid {
		t.Status = domain.TripStatus(status.String)
	}
	return t, nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func nullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func fromTimestamptz(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time
}

func fromUUID(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}
