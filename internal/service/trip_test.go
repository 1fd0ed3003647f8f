package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/repo"
	"github.com/pkordes/fleet-ledger/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list      func(ctx context.Context) ([]domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

var tripDriver = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")

func validTrip() domain.Trip {
	return domain.Trip{
		Name:          "T-2001",
		Origin:        "Regina, SK",
		Destination:   "Fargo, ND",
		StartDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		DistanceMiles: 380,
		DriverID:      &tripDriver,
	}
}

// echoRepo returns whatever it receives, for tests that only exercise validation.
func echoRepo() *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
		update: func(_ context.Context, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Name = "  T-2001 "
	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "T-2001", got.Name)
}

func TestTripService_Create_MissingName(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.Name = "   "

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndDateBeforeStartDate(t *testing.T) {
	svc := service.NewTripService(echoRepo())

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_InvalidFields(t *testing.T) {
	cases := map[string]func(*domain.Trip){
		"negative distance":  func(tr *domain.Trip) { tr.DistanceMiles = -1 },
		"unknown status":     func(tr *domain.Trip) { tr.Status = "parked" },
		"missing start date": func(tr *domain.Trip) { tr.StartDate = time.Time{} },
		"missing end date":   func(tr *domain.Trip) { tr.EndDate = time.Time{} },
		"missing driver":     func(tr *domain.Trip) { tr.DriverID = nil },
		"nil driver id":      func(tr *domain.Trip) { tr.DriverID = &uuid.Nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			trip := validTrip()
			mutate(&trip)

			_, err := service.NewTripService(echoRepo()).Create(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}

	_, err := service.NewTripService(r).Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

// ---- Read tests ------------------------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	_, err := service.NewTripService(r).GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_ListPaged(t *testing.T) {
	var gotParams domain.PaginationParams
	r := &mockTripRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
			gotParams = p
			return []domain.Trip{validTrip()}, 41, nil
		},
	}

	page, err := service.NewTripService(r).ListPaged(context.Background(), domain.PaginationParams{Page: 3, Limit: 20})

	require.NoError(t, err)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 20}, gotParams)
	assert.Equal(t, 41, page.Total)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Items, 1)
}

func TestTripService_ListPaged_EmptyIsNonNil(t *testing.T) {
	r := &mockTripRepo{
		listPaged: func(_ context.Context, _ domain.PaginationParams) ([]domain.Trip, int64, error) {
			return nil, 0, nil
		},
	}

	page, err := service.NewTripService(r).ListPaged(context.Background(), domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

// ---- Update / Delete tests -------------------------------------------------

func TestTripService_Update_Valid(t *testing.T) {
	trip := validTrip()
	trip.ID = uuid.New()
	trip.Status = domain.TripStatusCompleted

	got, err := service.NewTripService(echoRepo()).Update(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusCompleted, got.Status)
}

func TestTripService_Update_RequiredFields(t *testing.T) {
	cases := map[string]func(*domain.Trip){
		"missing name":       func(tr *domain.Trip) { tr.Name = "" },
		"missing start date": func(tr *domain.Trip) { tr.StartDate = time.Time{} },
		"missing end date":   func(tr *domain.Trip) { tr.EndDate = time.Time{} },
		"missing driver":     func(tr *domain.Trip) { tr.DriverID = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			trip := validTrip()
			trip.ID = uuid.New()
			mutate(&trip)

			_, err := service.NewTripService(echoRepo()).Update(context.Background(), trip)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}

	err := service.NewTripService(r).Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
