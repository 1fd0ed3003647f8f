// Package receipt stores receipt images for transactions.
//
// Uploads try the primary store (S3) first and fall back to an inline data
// URL. Only a failed fallback is an error for the caller.
package receipt

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// Receipt is a validated upload ready for storage.
type Receipt struct {
	Filename    string
	ContentType string
	Extension   string // with leading dot, from content sniffing
	Data        []byte
}

// Store persists a receipt and returns a URL the client can fetch it from.
type Store interface {
	Put(ctx context.Context, r Receipt) (string, error)
}

// Result is the outcome of an upload. Fallback is true when the URL is an
// inline data URL because the primary store was unavailable or failed.
type Result struct {
	URL         string `json:"url"`
	Fallback    bool   `json:"fallback"`
	ContentType string `json:"content_type"`
}

// allowed lists the content types accepted as receipts.
var allowed = []string{"image/jpeg", "image/png", "image/webp", "image/heic", "image/gif", "application/pdf"}

// Uploader runs the two-step upload strategy.
type Uploader struct {
	primary  Store // nil when no object storage is configured
	fallback Store
	timeout  time.Duration
	log      *slog.Logger
}

// NewUploader constructs an Uploader. primary may be nil. timeout bounds the
// primary attempt only; the fallback runs under the caller's context.
func NewUploader(primary, fallback Store, timeout time.Duration, log *slog.Logger) *Uploader {
	return &Uploader{primary: primary, fallback: fallback, timeout: timeout, log: log}
}

// Upload sniffs data, then stores it with the primary store, falling back to
// the inline store on any primary failure. Unsupported or empty files return
// domain.ErrValidation; a failed fallback returns domain.ErrReceiptUploadFailed.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte) (Result, error) {
	r, err := Prepare(filename, data)
	if err != nil {
		return Result{}, err
	}

	if u.primary != nil {
		url, err := u.putPrimary(ctx, r)
		if err == nil {
			return Result{URL: url, ContentType: r.ContentType}, nil
		}
		u.log.WarnContext(ctx, "primary receipt store failed, falling back to inline",
			"filename", r.Filename, "bytes", len(r.Data), "error", err)
	}

	url, err := u.fallback.Put(ctx, r)
	if err != nil {
		return Result{}, fmt.Errorf("receipt.Uploader.Upload: %w: %w", domain.ErrReceiptUploadFailed, err)
	}
	return Result{URL: url, Fallback: true, ContentType: r.ContentType}, nil
}

func (u *Uploader) putPrimary(ctx context.Context, r Receipt) (string, error) {
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}
	return u.primary.Put(ctx, r)
}

// Prepare validates data and detects its content type from the bytes, not
// from the filename or the client's header.
func Prepare(filename string, data []byte) (Receipt, error) {
	if len(data) == 0 {
		return Receipt{}, fmt.Errorf("%w: receipt file is empty", domain.ErrValidation)
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowed...) {
		return Receipt{}, fmt.Errorf("%w: unsupported receipt type %s", domain.ErrValidation, mt.String())
	}
	name := strings.TrimSpace(filename)
	if name == "" {
		name = "receipt" + mt.Extension()
	}
	return Receipt{Filename: name, ContentType: mt.String(), Extension: mt.Extension(), Data: data}, nil
}
