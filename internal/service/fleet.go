package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/repo"
)

// FleetService manages the units and drivers trips are assigned to.
type FleetService struct {
	units   repo.UnitRepo
	drivers repo.DriverRepo
}

// NewFleetService constructs a FleetService backed by the provided repos.
func NewFleetService(units repo.UnitRepo, drivers repo.DriverRepo) *FleetService {
	return &FleetService{units: units, drivers: drivers}
}

// CreateUnit validates and persists a unit. The unit number is required and unique.
func (s *FleetService) CreateUnit(ctx context.Context, unit domain.Unit) (domain.Unit, error) {
	unit.Number = strings.TrimSpace(unit.Number)
	if unit.Number == "" {
		return domain.Unit{}, fmt.Errorf("%w: number is required", domain.ErrValidation)
	}
	unit.Plate = strings.ToUpper(strings.TrimSpace(unit.Plate))

	result, err := s.units.Create(ctx, unit)
	if err != nil {
		return domain.Unit{}, fmt.Errorf("service.FleetService.CreateUnit: %w", err)
	}
	return result, nil
}

func (s *FleetService) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FleetService.ListUnits: %w", err)
	}
	if units == nil {
		return []domain.Unit{}, nil
	}
	return units, nil
}

// CreateDriver validates and persists a driver. Email is optional but must parse when given.
func (s *FleetService) CreateDriver(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	driver.Name = strings.TrimSpace(driver.Name)
	driver.Email = strings.TrimSpace(driver.Email)
	if driver.Name == "" {
		return domain.Driver{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if driver.Email != "" {
		if _, err := mail.ParseAddress(driver.Email); err != nil {
			return domain.Driver{}, fmt.Errorf("%w: invalid email %q", domain.ErrValidation, driver.Email)
		}
	}

	result, err := s.drivers.Create(ctx, driver)
	if err != nil {
		return domain.Driver{}, fmt.Errorf("service.FleetService.CreateDriver: %w", err)
	}
	return result, nil
}

func (s *FleetService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FleetService.ListDrivers: %w", err)
	}
	if drivers == nil {
		return []domain.Driver{}, nil
	}
	return drivers, nil
}
