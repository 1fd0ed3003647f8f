// Package handler implements the HTTP handlers for the fleet ledger API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (trip.go, transaction.go, view.go, etc.) but share the same Server
// struct so they can reach its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/ledger"
	"github.com/pkordes/fleet-ledger/internal/middleware"
	"github.com/pkordes/fleet-ledger/internal/receipt"
	"github.com/pkordes/fleet-ledger/internal/service"
)

// TripServicer defines the trip operations the handlers depend on.
// Interfaces live here, in the consumer package, so tests can inject mocks.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TransactionServicer defines the transaction operations. Ownership and the
// lock window are enforced behind it.
type TransactionServicer interface {
	Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	Update(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AttachReceipt(ctx context.Context, id uuid.UUID, url string) (domain.Transaction, error)
}

// FleetServicer manages units and drivers.
type FleetServicer interface {
	CreateUnit(ctx context.Context, unit domain.Unit) (domain.Unit, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
	CreateDriver(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
}

// ViewServicer assembles the read-only dashboard views.
type ViewServicer interface {
	TripsView(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (service.TripsReport, error)
	ExpensesView(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (service.ExpensesReport, error)
}

// Exporter builds the report behind the file exports.
type Exporter interface {
	Export(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (domain.ExportReport, error)
}

// ReceiptUploader stores receipt files.
type ReceiptUploader interface {
	Upload(ctx context.Context, filename string, data []byte) (receipt.Result, error)
}

// Deps groups the services a Server needs.
type Deps struct {
	Trips        TripServicer
	Transactions TransactionServicer
	Fleet        FleetServicer
	Views        ViewServicer
	Exports      Exporter
	Receipts     ReceiptUploader
	// OpenAPI is served verbatim at /openapi.yaml.
	OpenAPI []byte
}

// Server implements every API endpoint.
type Server struct {
	trips        TripServicer
	transactions TransactionServicer
	fleet        FleetServicer
	views        ViewServicer
	exports      Exporter
	receipts     ReceiptUploader
	openapi      []byte
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	return &Server{
		trips:        d.Trips,
		transactions: d.Transactions,
		fleet:        d.Fleet,
		views:        d.Views,
		exports:      d.Exports,
		receipts:     d.Receipts,
		openapi:      d.OpenAPI,
	}
}

// Routes registers every endpoint on a new router. auth authenticates the
// caller; health and the OpenAPI document stay public.
func (s *Server) Routes(auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Get("/{id}", s.GetTrip)
			r.With(middleware.RequireAdmin).Post("/", s.CreateTrip)
			r.With(middleware.RequireAdmin).Put("/{id}", s.UpdateTrip)
			r.With(middleware.RequireAdmin).Delete("/{id}", s.DeleteTrip)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", s.CreateTransaction)
			r.Get("/{id}", s.GetTransaction)
			r.Put("/{id}", s.UpdateTransaction)
			r.Delete("/{id}", s.DeleteTransaction)
			r.Post("/{id}/receipt", s.AttachReceipt)
		})

		r.Post("/receipts", s.UploadReceipt)

		r.Get("/views/trips", s.GetTripsView)
		r.Get("/views/expenses", s.GetExpensesView)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/units", s.ListUnits)
			r.Post("/units", s.CreateUnit)
			r.Get("/drivers", s.ListDrivers)
			r.Post("/drivers", s.CreateDriver)
			r.Get("/export/trips", s.ExportTrips)
		})
	})

	return r
}
