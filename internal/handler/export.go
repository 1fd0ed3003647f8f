package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/fleet-ledger/internal/export"
)

// ExportTrips handles GET /export/trips.
// Accepts the trips view parameters plus format=csv|xlsx|pdf (default csv).
// The file is rendered into memory first so a rendering error still yields
// a JSON error response instead of a truncated download.
func (s *Server) ExportTrips(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter, sort, err := parseViewQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := s.exports.Export(r.Context(), filter, sort)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, report); err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(report)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	setWarningHeader(w, len(report.Warnings))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
