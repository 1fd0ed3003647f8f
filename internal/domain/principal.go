package domain

import (
	"context"

	"github.com/google/uuid"
)

// Role is the coarse permission level of an authenticated caller.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

// Principal is the authenticated caller of a request.
// DriverID is set only for RoleDriver.
type Principal struct {
	Subject  string
	Role     Role
	DriverID uuid.UUID
}

// IsAdmin reports whether the principal may manage every record.
func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// IsDriver reports whether the principal is restricted to its own records.
func (p Principal) IsDriver() bool { return p.Role == RoleDriver }

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom extracts the principal stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
