package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/handler"
	"github.com/pkordes/fleet-ledger/internal/ledger"
	"github.com/pkordes/fleet-ledger/internal/receipt"
	"github.com/pkordes/fleet-ledger/internal/service"
)

// ---- mocks -----------------------------------------------------------------

type mockTripServicer struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) ListPaged(ctx context.Context, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockTransactionServicer struct {
	create        func(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Transaction, error)
	update        func(ctx context.Context, tx domain.Transaction) (domain.Transaction, error)
	delete        func(ctx context.Context, id uuid.UUID) error
	attachReceipt func(ctx context.Context, id uuid.UUID, url string) (domain.Transaction, error)
}

var _ handler.TransactionServicer = (*mockTransactionServicer)(nil)

func (m *mockTransactionServicer) Create(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	return m.create(ctx, tx)
}
func (m *mockTransactionServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Transaction, error) {
	return m.getByID(ctx, id)
}
func (m *mockTransactionServicer) Update(ctx context.Context, tx domain.Transaction) (domain.Transaction, error) {
	return m.update(ctx, tx)
}
func (m *mockTransactionServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTransactionServicer) AttachReceipt(ctx context.Context, id uuid.UUID, url string) (domain.Transaction, error) {
	return m.attachReceipt(ctx, id, url)
}

type mockFleetServicer struct {
	createUnit   func(ctx context.Context, u domain.Unit) (domain.Unit, error)
	listUnits    func(ctx context.Context) ([]domain.Unit, error)
	createDriver func(ctx context.Context, d domain.Driver) (domain.Driver, error)
	listDrivers  func(ctx context.Context) ([]domain.Driver, error)
}

var _ handler.FleetServicer = (*mockFleetServicer)(nil)

func (m *mockFleetServicer) CreateUnit(ctx context.Context, u domain.Unit) (domain.Unit, error) {
	return m.createUnit(ctx, u)
}
func (m *mockFleetServicer) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	return m.listUnits(ctx)
}
func (m *mockFleetServicer) CreateDriver(ctx context.Context, d domain.Driver) (domain.Driver, error) {
	return m.createDriver(ctx, d)
}
func (m *mockFleetServicer) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	return m.listDrivers(ctx)
}

type mockViewServicer struct {
	tripsView    func(ctx context.Context, f ledger.FilterSpec, s ledger.SortSpec) (service.TripsReport, error)
	expensesView func(ctx context.Context, f ledger.FilterSpec, s ledger.SortSpec) (service.ExpensesReport, error)
}

var _ handler.ViewServicer = (*mockViewServicer)(nil)

func (m *mockViewServicer) TripsView(ctx context.Context, f ledger.FilterSpec, s ledger.SortSpec) (service.TripsReport, error) {
	return m.tripsView(ctx, f, s)
}
func (m *mockViewServicer) ExpensesView(ctx context.Context, f ledger.FilterSpec, s ledger.SortSpec) (service.ExpensesReport, error) {
	return m.expensesView(ctx, f, s)
}

type mockExporter struct {
	export func(ctx context.Context, f ledger.FilterSpec, s ledger.SortSpec) (domain.ExportReport, error)
}

var _ handler.Exporter = (*mockExporter)(nil)

func (m *mockExporter) Export(ctx context.Context, f ledger.FilterSpec, s ledger.SortSpec) (domain.ExportReport, error) {
	return m.export(ctx, f, s)
}

type mockReceiptUploader struct {
	upload func(ctx context.Context, filename string, data []byte) (receipt.Result, error)
}

var _ handler.ReceiptUploader = (*mockReceiptUploader)(nil)

func (m *mockReceiptUploader) Upload(ctx context.Context, filename string, data []byte) (receipt.Result, error) {
	return m.upload(ctx, filename, data)
}

// ---- helpers ---------------------------------------------------------------

var (
	adminPrincipal  = domain.Principal{Subject: "ops", Role: domain.RoleAdmin}
	driverID        = uuid.MustParse("5a0c6a43-8d7e-4f21-9d4e-0b1e7c3f2a10")
	driverPrincipal = domain.Principal{Subject: "riley", Role: domain.RoleDriver, DriverID: driverID}
)

// as returns an auth middleware that authenticates every request as p.
func as(p domain.Principal) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), p)))
		})
	}
}

// newHTTPHandler wires a Server into its router the way main.go does,
// with a fixed caller in place of token auth.
func newHTTPHandler(d handler.Deps, p domain.Principal) http.Handler {
	return handler.NewServer(d).Routes(as(p))
}

func do(h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doRaw(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doMultipart(t *testing.T, h http.Handler, target, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}
