package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/repo"
	"github.com/pkordes/fleet-ledger/internal/service"
)

type mockUnitRepo struct {
	create func(ctx context.Context, unit domain.Unit) (domain.Unit, error)
	list   func(ctx context.Context) ([]domain.Unit, error)
}

func (m *mockUnitRepo) Create(ctx context.Context, unit domain.Unit) (domain.Unit, error) {
	return m.create(ctx, unit)
}
func (m *mockUnitRepo) List(ctx context.Context) ([]domain.Unit, error) { return m.list(ctx) }

type mockDriverRepo struct {
	create  func(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Driver, error)
	list    func(ctx context.Context) ([]domain.Driver, error)
}

func (m *mockDriverRepo) Create(ctx context.Context, driver domain.Driver) (domain.Driver, error) {
	return m.create(ctx, driver)
}
func (m *mockDriverRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Driver, error) {
	return m.getByID(ctx, id)
}
func (m *mockDriverRepo) List(ctx context.Context) ([]domain.Driver, error) { return m.list(ctx) }

var (
	_ repo.UnitRepo   = (*mockUnitRepo)(nil)
	_ repo.DriverRepo = (*mockDriverRepo)(nil)
)

func TestFleetService_CreateUnit(t *testing.T) {
	units := &mockUnitRepo{create: func(_ context.Context, u domain.Unit) (domain.Unit, error) { return u, nil }}
	svc := service.NewFleetService(units, &mockDriverRepo{})

	got, err := svc.CreateUnit(context.Background(), domain.Unit{Number: " U-12 ", Plate: "abc 123"})
	require.NoError(t, err)
	assert.Equal(t, "U-12", got.Number)
	assert.Equal(t, "ABC 123", got.Plate)

	_, err = svc.CreateUnit(context.Background(), domain.Unit{Number: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFleetService_CreateDriver(t *testing.T) {
	drivers := &mockDriverRepo{create: func(_ context.Context, d domain.Driver) (domain.Driver, error) { return d, nil }}
	svc := service.NewFleetService(&mockUnitRepo{}, drivers)

	got, err := svc.CreateDriver(context.Background(), domain.Driver{Name: "Lee Chan", Email: "lee@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Lee Chan", got.Name)

	_, err = svc.CreateDriver(context.Background(), domain.Driver{Name: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateDriver(context.Background(), domain.Driver{Name: "Lee", Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFleetService_ListsAreNonNil(t *testing.T) {
	svc := service.NewFleetService(
		&mockUnitRepo{list: func(context.Context) ([]domain.Unit, error) { return nil, nil }},
		&mockDriverRepo{list: func(context.Context) ([]domain.Driver, error) { return nil, nil }},
	)

	units, err := svc.ListUnits(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, units)

	drivers, err := svc.ListDrivers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, drivers)
}

func TestFleetService_ListUnits_RepoError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := service.NewFleetService(
		&mockUnitRepo{list: func(context.Context) ([]domain.Unit, error) { return nil, boom }},
		&mockDriverRepo{},
	)

	_, err := svc.ListUnits(context.Background())

	assert.ErrorIs(t, err, boom)
}
