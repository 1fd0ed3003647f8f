package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/ledger"
	"github.com/pkordes/fleet-ledger/internal/repo"
)

// Source names one of the collections a dashboard loads.
type Source string

const (
	SourceTrips        Source = "trips"
	SourceTransactions Source = "transactions"
	SourceUnits        Source = "units"
	SourceDrivers      Source = "drivers"
)

// LoadWarning records a source that failed to load. The view is still
// rendered, with that source treated as empty.
type LoadWarning struct {
	Source  Source `json:"source"`
	Message string `json:"message"`
}

// Dashboard is the raw data behind every view, loaded in one pass.
type Dashboard struct {
	Trips        []domain.Trip        `json:"trips"`
	Transactions []domain.Transaction `json:"transactions"`
	Units        []domain.Unit        `json:"units"`
	Drivers      []domain.Driver      `json:"drivers"`
	Warnings     []LoadWarning        `json:"warnings"`
}

// TripsReport is the trips view plus the fleet records needed to label it.
type TripsReport struct {
	ledger.TripsView
	Units    []domain.Unit   `json:"units"`
	Drivers  []domain.Driver `json:"drivers"`
	Warnings []LoadWarning   `json:"warnings"`
}

// ExpensesReport is the expenses view plus any load warnings.
type ExpensesReport struct {
	ledger.ExpensesView
	Warnings []LoadWarning `json:"warnings"`
}

// DashboardConfig carries the settings a DashboardService reads once at startup.
type DashboardConfig struct {
	Rates       domain.ExchangeRateSet
	Primary     domain.Currency
	LoadTimeout time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// DashboardService loads the ledger data and assembles the read-only views.
// Drivers only ever see their own trips and transactions.
type DashboardService struct {
	trips   repo.TripRepo
	txs     repo.TransactionRepo
	units   repo.UnitRepo
	drivers repo.DriverRepo
	cfg     DashboardConfig
	log     *slog.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(trips repo.TripRepo, txs repo.TransactionRepo, units repo.UnitRepo, drivers repo.DriverRepo, cfg DashboardConfig, log *slog.Logger) *DashboardService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &DashboardService{trips: trips, txs: txs, units: units, drivers: drivers, cfg: cfg, log: log}
}

// Snapshot captures the clock and the configured rates for one request.
func (s *DashboardService) Snapshot() ledger.Snapshot {
	return ledger.Snapshot{Now: s.cfg.Now(), Rates: s.cfg.Rates, Primary: s.cfg.Primary}
}

// Load fetches the requested sources concurrently under the load timeout.
// A failing source is logged, comes back empty and adds a warning; it never
// cancels or fails the others. With no sources given, all four are loaded.
func (s *DashboardService) Load(ctx context.Context, sources ...Source) Dashboard {
	if len(sources) == 0 {
		sources = []Source{SourceTrips, SourceTransactions, SourceUnits, SourceDrivers}
	}
	if s.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.LoadTimeout)
		defer cancel()
	}

	d := Dashboard{
		Trips:        []domain.Trip{},
		Transactions: []domain.Transaction{},
		Units:        []domain.Unit{},
		Drivers:      []domain.Driver{},
	}
	// One slot per source keeps warnings in request order without a mutex.
	warnings := make([]*LoadWarning, len(sources))

	var g errgroup.Group
	for i, src := range sources {
		switch src {
		case SourceTrips:
			g.Go(func() error { warnings[i] = loadInto(ctx, s, src, s.trips.List, &d.Trips); return nil })
		case SourceTransactions:
			g.Go(func() error { warnings[i] = loadInto(ctx, s, src, s.txs.List, &d.Transactions); return nil })
		case SourceUnits:
			g.Go(func() error { warnings[i] = loadInto(ctx, s, src, s.units.List, &d.Units); return nil })
		case SourceDrivers:
			g.Go(func() error { warnings[i] = loadInto(ctx, s, src, s.drivers.List, &d.Drivers); return nil })
		}
	}
	_ = g.Wait()

	d.Warnings = []LoadWarning{}
	for _, w := range warnings {
		if w != nil {
			d.Warnings = append(d.Warnings, *w)
		}
	}
	return d
}

func loadInto[T any](ctx context.Context, s *DashboardService, src Source, fetch func(context.Context) ([]T, error), dst *[]T) *LoadWarning {
	items, err := fetch(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "dashboard source failed to load", "source", src, "error", err)
		return &LoadWarning{Source: src, Message: fmt.Sprintf("%s could not be loaded", src)}
	}
	if items != nil {
		*dst = items
	}
	return nil
}

// TripsView loads trips, transactions and fleet records and assembles the
// trips view. A driver's filter is pinned to their own driver ID, and a driver
// only gets back the fleet records their rows refer to.
func (s *DashboardService) TripsView(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (TripsReport, error) {
	filter, err := scopeFilter(ctx, filter)
	if err != nil {
		return TripsReport{}, fmt.Errorf("service.DashboardService.TripsView: %w", err)
	}
	snap := s.Snapshot()
	d := s.Load(ctx)

	view, err := ledger.AssembleTrips(d.Trips, d.Transactions, filter, sort, snap)
	if err != nil {
		return TripsReport{}, fmt.Errorf("service.DashboardService.TripsView: %w", err)
	}
	report := TripsReport{TripsView: view, Units: d.Units, Drivers: d.Drivers, Warnings: d.Warnings}
	if p, _ := domain.PrincipalFrom(ctx); p.IsDriver() {
		report.Units, report.Drivers = referencedFleet(view.Rows, d.Units, d.Drivers, p.DriverID)
	}
	return report, nil
}

// referencedFleet keeps the units on the visible rows and the caller's own
// driver record. The full fleet lists are admin-only.
func referencedFleet(rows []ledger.TripRow, units []domain.Unit, drivers []domain.Driver, self uuid.UUID) ([]domain.Unit, []domain.Driver) {
	unitIDs := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if row.Trip.UnitID != nil {
			unitIDs[*row.Trip.UnitID] = true
		}
	}

	keptUnits := []domain.Unit{}
	for _, u := range units {
		if unitIDs[u.ID] {
			keptUnits = append(keptUnits, u)
		}
	}
	keptDrivers := []domain.Driver{}
	for _, d := range drivers {
		if d.ID == self {
			keptDrivers = append(keptDrivers, d)
		}
	}
	return keptUnits, keptDrivers
}

// ExpensesView loads transactions and assembles the expenses view.
func (s *DashboardService) ExpensesView(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (ExpensesReport, error) {
	filter, err := scopeFilter(ctx, filter)
	if err != nil {
		return ExpensesReport{}, fmt.Errorf("service.DashboardService.ExpensesView: %w", err)
	}
	snap := s.Snapshot()
	d := s.Load(ctx, SourceTransactions)

	view, err := ledger.AssembleExpenses(d.Transactions, filter, sort, snap)
	if err != nil {
		return ExpensesReport{}, fmt.Errorf("service.DashboardService.ExpensesView: %w", err)
	}
	return ExpensesReport{ExpensesView: view, Warnings: d.Warnings}, nil
}

func scopeFilter(ctx context.Context, filter ledger.FilterSpec) (ledger.FilterSpec, error) {
	p, err := principal(ctx)
	if err != nil {
		return ledger.FilterSpec{}, err
	}
	if p.IsDriver() {
		id := p.DriverID
		filter.DriverID = &id
	}
	return filter, nil
}
