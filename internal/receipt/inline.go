package receipt

import (
	"context"
	"encoding/base64"
	"fmt"
)

// InlineStore encodes receipts as data URLs. It needs no infrastructure, so
// it is the fallback, but it refuses files that would bloat the row.
type InlineStore struct {
	MaxBytes int
}

func (s InlineStore) Put(ctx context.Context, r Receipt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.MaxBytes > 0 && len(r.Data) > s.MaxBytes {
		return "", fmt.Errorf("receipt.InlineStore.Put: %d bytes exceeds inline limit of %d", len(r.Data), s.MaxBytes)
	}
	return "data:" + r.ContentType + ";base64," + base64.StdEncoding.EncodeToString(r.Data), nil
}
