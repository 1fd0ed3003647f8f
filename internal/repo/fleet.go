package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

const uniqueViolation = "23505"

// UnitRepo persists fleet units.
type UnitRepo interface {
	// Create returns a domain.ErrValidation error when the unit number is taken.
	Create(ctx context.Context, unit domain.Unit) (domain.Unit, error)
	// List returns every unit ordered by number.
	List(ctx context.Context) ([]domain.Unit, error)
}

// DriverRepo persists drivers.
type DriverRepo interface {
	Create(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	// GetByID returns domain.ErrNotFound if no driver with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	// List returns every driver ordered by name.
	List(ctx context.Context) ([]domain.Driver, error)
}

type pgUnitRepo struct {
	db db
}

// NewUnitRepo constructs a UnitRepo backed by the provided db connection.
func NewUnitRepo(db db) UnitRepo {
	return &pgUnitRepo{db: db}
}

func (r *pgUnitRepo) Create(ctx context.Context, unit domain.Unit) (domain.Unit, error) {
	const q = `
		INSERT INTO units (number, make, model, plate)
		VALUES (@number, @make, @model, @plate)
		RETURNING id, number, make, model, plate, created_at`

	args := pgx.NamedArgs{
		"number": unit.Number,
		"make":   unit.Make,
		"model":  unit.Model,
		"plate":  unit.Plate,
	}

	result, err := scanUnit(r.db.QueryRow(ctx, q, args))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.Unit{}, fmt.Errorf("repo.UnitRepo.Create: %w: unit number %q already exists", domain.ErrValidation, unit.Number)
		}
		return domain.Unit{}, fmt.Errorf("repo.UnitRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUnitRepo) List(ctx context.Context) ([]domain.Unit, error) {
	const q = `SELECT id, number, make, model, plate, created_at FROM units ORDER BY number`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UnitRepo.List: %w", err)
	}
	defer rows.Close()

	units := []domain.Unit{}
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UnitRepo.List: scan: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UnitRepo.List: rows: %w", err)
	}
	return units, nil
}

func scanUnit(s scanner) (domain.Unit, error) {
	var (
		u  domain.Unit
		id pgtype.UUID
	)
	if err := s.Scan(&id, &u.Number, &u.Make, &u.Model, &u.Plate, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Unit{}, domain.ErrNotFound
		}
		return domain.Unit{}, err
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}

type pgDriverRepo struct {
	db db
}

// NewDriverRepo constructs a DriverRepo backed by the provided db connection.
func NewDriverRepo(db db) DriverRepo {
	return &pgDriverRepo{db: db}
}

func (r *pgDriverRepo) Create(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	const q = `
		INSERT INTO drivers (name, email, phone)
		VALUES (@name, @email, @phone)
		RETURNING id, name, email, phone, created_at`

	args := pgx.NamedArgs{
		"name":  driver.Name,
		"email": driver.Email,
		"phone": driver.Phone,
	}

	result, err := scanDriver(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	const q = `SELECT id, name, email, phone, created_at FROM drivers WHERE id = @id`

	result, err := scanDriver(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Driver{}, fmt.Errorf("repo.DriverRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	const q = `SELECT id, name, email, phone, created_at FROM drivers ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: %w", err)
	}
	defer rows.Close()

	drivers := []domain.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DriverRepo.List: scan: %w", err)
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DriverRepo.List: rows: %w", err)
	}
	return drivers, nil
}

func scanDriver(s scanner) (domain.Driver, error) {
	var (
		d  domain.Driver
		id pgtype.UUID
	)
	if err := s.Scan(&id, &d.Name, &d.Email, &d.Phone, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Driver{}, domain.ErrNotFound
		}
		return domain.Driver{}, err
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
