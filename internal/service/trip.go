// Package service contains the business logic for the Fleet Ledger API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Name = strings.TrimSpace(trip.Name)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trips, newest first.
func (s *TripService) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	trips, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.ListPaged: %w", err)
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	return domain.Page[domain.Trip]{Items: trips, Page: p.Page, Limit: p.Limit, Total: int(total)}, nil
}

// Update validates and updates an existing trip.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip.Name = strings.TrimSpace(trip.Name)
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID. Its transactions are removed with it.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces the rules shared by Create and Update. A trip is
// saved with its name, both dates and a driver; records missing them only
// exist from older imports.
func validateTrip(trip domain.Trip) error {
	if trip.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if trip.EndDate.IsZero() {
		return fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	}
	if trip.DriverID == nil || *trip.DriverID == uuid.Nil {
		return fmt.Errorf("%w: driver_id is required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.DistanceMiles < 0 {
		return fmt.Errorf("%w: distance_miles must not be negative", domain.ErrValidation)
	}
	if trip.Status != "" && !trip.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	return nil
}
