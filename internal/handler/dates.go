package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// dateValue returns the UTC midnight of d, or the zero time when d is absent.
func dateValue(d *openapi_types.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
