package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pkordes/fleet-ledger/internal/receipt"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temp files. The body itself is capped by middleware.
const multipartMemory = 8 << 20

// UploadReceipt handles POST /receipts: a multipart form with a "file" part.
// A 201 with fallback=true means the receipt is stored inline.
func (s *Server) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	res, err := s.upload(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, res)
}

func (s *Server) upload(r *http.Request) (receipt.Result, error) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return receipt.Result{}, err
		}
		return receipt.Result{}, badRequest("expected a multipart form with a file part")
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		return receipt.Result{}, badRequest(`multipart part "file" is required`)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return receipt.Result{}, fmt.Errorf("handler.upload: read file: %w", err)
	}
	return s.receipts.Upload(r.Context(), header.Filename, data)
}
