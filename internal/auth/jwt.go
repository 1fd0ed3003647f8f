// Package auth turns bearer tokens into domain principals.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fleet-ledger/internal/domain"
)

// ErrInvalidToken is returned for any token that fails parsing, signature
// verification, expiry, or claim checks. Middleware maps it to HTTP 401.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload. sub identifies the caller; driver_id is
// required for the driver role.
type Claims struct {
	Role     string `json:"role"`
	DriverID string `json:"driver_id,omitempty"`
	jwt.RegisteredClaims
}

// Parser validates HS256 tokens signed with a shared secret.
type Parser struct {
	secret []byte
	parser *jwt.Parser
}

// NewParser constructs a Parser for secret.
func NewParser(secret string) *Parser {
	return &Parser{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(30*time.Second),
		),
	}
}

// Parse verifies raw and returns the principal it carries.
func (p *Parser) Parse(raw string) (domain.Principal, error) {
	var claims Claims
	_, err := p.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	})
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	principal := domain.Principal{Subject: claims.Subject, Role: domain.Role(claims.Role)}
	switch principal.Role {
	case domain.RoleAdmin:
	case domain.RoleDriver:
		id, err := uuid.Parse(claims.DriverID)
		if err != nil {
			return domain.Principal{}, fmt.Errorf("%w: driver token without a valid driver_id", ErrInvalidToken)
		}
		principal.DriverID = id
	default:
		return domain.Principal{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}
	return principal, nil
}

// Issue signs a token for principal valid for ttl. Production tokens come
// from the identity provider; Issue is for local use and tests.
func (p *Parser) Issue(principal domain.Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if principal.IsDriver() {
		claims.DriverID = principal.DriverID.String()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Parser.Issue: %w", err)
	}
	return signed, nil
}
