package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
	"github.com/pkordes/fleet-ledger/internal/ledger"
)

// TripsViewer is the part of DashboardService the export needs.
type TripsViewer interface {
	TripsView(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (TripsReport, error)
}

// ExportService flattens the trips view into an ExportReport for the renderers.
type ExportService struct {
	views TripsViewer
}

// NewExportService constructs an ExportService over the given view source.
func NewExportService(views TripsViewer) *ExportService {
	return &ExportService{views: views}
}

// Export returns one ExportRow per visible trip, in view order, with the
// same totals the trips view shows.
func (s *ExportService) Export(ctx context.Context, filter ledger.FilterSpec, sort ledger.SortSpec) (domain.ExportReport, error) {
	report, err := s.views.TripsView(ctx, filter, sort)
	if err != nil {
		return domain.ExportReport{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	drivers := make(map[uuid.UUID]string, len(report.Drivers))
	for _, d := range report.Drivers {
		drivers[d.ID] = d.Name
	}
	units := make(map[uuid.UUID]string, len(report.Units))
	for _, u := range report.Units {
		units[u.ID] = u.Number
	}

	rows := make([]domain.ExportRow, 0, len(report.Rows))
	for _, r := range report.Rows {
		rows = append(rows, domain.ExportRow{
			TripID:        r.Trip.ID.String(),
			TripName:      r.Trip.DisplayID(),
			Origin:        r.Trip.Origin,
			Destination:   r.Trip.Destination,
			StartDate:     formatDate(r.Trip.StartDate),
			EndDate:       formatDate(r.Trip.EndDate),
			Status:        r.Status,
			UnknownDates:  r.UnknownDates,
			Locked:        r.Locked,
			DriverName:    lookup(drivers, r.Trip.DriverID),
			UnitNumber:    lookup(units, r.Trip.UnitID),
			DistanceMiles: r.Trip.DistanceMiles,
			ExpensesCAD:   r.Totals.CAD,
			ExpensesUSD:   r.Totals.USD,
			GrandTotal:    r.Totals.GrandTotal,
			ExpenseCount:  r.Totals.Count,
		})
	}

	warnings := make([]string, 0, len(report.Warnings))
	for _, w := range report.Warnings {
		warnings = append(warnings, w.Message)
	}

	return domain.ExportReport{
		GeneratedAt:     report.Snapshot.Now,
		PrimaryCurrency: report.Snapshot.Primary,
		Rates:           report.Snapshot.Rates,
		Rows:            rows,
		TotalCAD:        report.Totals.CAD,
		TotalUSD:        report.Totals.USD,
		GrandTotal:      report.Totals.GrandTotal,
		Warnings:        warnings,
	}, nil
}

func lookup(names map[uuid.UUID]string, id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
