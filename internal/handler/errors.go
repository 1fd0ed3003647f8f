package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// ErrorDetail is the body of every non-2xx JSON response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorDetail under "error".
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// errBadRequest marks malformed input rejected before reaching a service.
var errBadRequest = errors.New("bad request")

// writeJSON encodes v with status. Encoding errors are logged; the header is
// already sent by then.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "encode response", "error", err)
	}
}

// writeError maps err onto a status code and the error envelope.
// Unrecognised errors are logged and reported as a bare 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	msg := unwrapMessage(err)
	switch status {
	case http.StatusNotFound:
		msg = domain.ErrNotFound.Error()
	case http.StatusBadGateway:
		slog.WarnContext(r.Context(), "receipt upload failed", "error", err)
		msg = domain.ErrReceiptUploadFailed.Error()
	case http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		msg = "internal server error"
	}
	writeJSON(w, r, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: msg}})
}

func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrLocked):
		return http.StatusConflict, "locked"
	case errors.Is(err, domain.ErrReceiptUploadFailed):
		return http.StatusBadGateway, "receipt_upload_failed"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrForbidden, domain.ErrLocked, errBadRequest} {
		marker := sentinel.Error() + ": "
		if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
			return msg[i+len(marker):]
		}
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return badRequest("malformed JSON body: " + err.Error())
	}
	return nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, badRequest("id must be a UUID")
	}
	return id, nil
}

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

// requestError is a bad-request error whose message is shown to the client as is.
type requestError struct{ msg string }

func (e *requestError) Error() string { return errBadRequest.Error() + ": " + e.msg }
func (e *requestError) Unwrap() error { return errBadRequest }
