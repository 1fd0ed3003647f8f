package handler

import (
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// TransactionRequest is the body of POST /transactions and PUT /transactions/{id}.
// Amount is a JSON string or number; it is kept exact.
type TransactionRequest struct {
	Type             domain.TransactionType `json:"type"`
	Category         string                 `json:"category"`
	Description      string                 `json:"description"`
	Amount           decimal.Decimal        `json:"amount"`
	OriginalCurrency domain.Currency        `json:"original_currency"`
	Date             *openapi_types.Date    `json:"date"`
	TripID           *uuid.UUID             `json:"trip_id"`
	UnitID           *uuid.UUID             `json:"unit_id"`
	DriverID         *uuid.UUID             `json:"driver_id"`
	VendorName       string                 `json:"vendor_name"`
	Notes            string                 `json:"notes"`
	ReceiptURL       string                 `json:"receipt_url"`
}

// CreateTransaction handles POST /transactions.
func (s *Server) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var body TransactionRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.transactions.Create(r.Context(), requestToTransaction(uuid.Nil, body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, created)
}

// GetTransaction handles GET /transactions/{id}.
func (s *Server) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := s.transactions.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, tx)
}

// UpdateTransaction handles PUT /transactions/{id}.
func (s *Server) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body TransactionRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.transactions.Update(r.Context(), requestToTransaction(id, body))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, updated)
}

// DeleteTransaction handles DELETE /transactions/{id}.
func (s *Server) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.transactions.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AttachReceipt handles POST /transactions/{id}/receipt.
// Access is checked before the upload so rejected callers never reach storage.
func (s *Server) AttachReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if _, err := s.transactions.GetByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.upload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.transactions.AttachReceipt(r.Context(), id, res.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, AttachReceiptResponse{Transaction: updated, Fallback: res.Fallback})
}

// AttachReceiptResponse reports the updated transaction and whether the
// receipt ended up inline.
type AttachReceiptResponse struct {
	Transaction domain.Transaction `json:"transaction"`
	Fallback    bool               `json:"fallback"`
}

func requestToTransaction(id uuid.UUID, body TransactionRequest) domain.Transaction {
	return domain.Transaction{
		ID:               id,
		Type:             body.Type,
		Category:         body.Category,
		Description:      body.Description,
		Amount:           body.Amount,
		OriginalCurrency: body.OriginalCurrency,
		Date:             dateValue(body.Date),
		TripID:           body.TripID,
		UnitID:           body.UnitID,
		DriverID:         body.DriverID,
		VendorName:       body.VendorName,
		Notes:            body.Notes,
		ReceiptURL:       body.ReceiptURL,
	}
}
