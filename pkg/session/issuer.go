// Package session issues the opaque token handed to the browser after login.
//
// PassthroughIssuer preserves the historical behavior: the Google access token
// for provider logins and a fixed placeholder for password logins. Neither is
// verifiable by this service. JWTIssuer replaces both with signed, revocable
// tokens.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenRevoked = errors.New("session token revoked")
	ErrUnsupported  = errors.New("session issuer cannot validate tokens")
)

// Subject describes who a token is issued for
type Subject struct {
	UserID uuid.UUID
	Email  string
	// ProviderToken is the Google access token, empty for password logins
	ProviderToken string
}

// Claims is what Validate recovers from a token
type Claims struct {
	ID        string
	UserID    uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Issuer creates and checks session tokens
type Issuer interface {
	Issue(ctx context.Context, subject Subject) (string, error)
	Validate(ctx context.Context, token string) (Claims, error)
	Revoke(ctx context.Context, token string) error
}

// PasswordLoginToken is returned for password logins by PassthroughIssuer
const PasswordLoginToken = "email-login-token"

// PassthroughIssuer returns tokens it did not mint and cannot validate
type PassthroughIssuer struct{}

func NewPassthroughIssuer() *PassthroughIssuer {
	return &PassthroughIssuer{}
}

func (PassthroughIssuer) Issue(_ context.Context, subject Subject) (string, error) {
	if subject.ProviderToken != "" {
		return subject.ProviderToken, nil
	}
	return PasswordLoginToken, nil
}

func (PassthroughIssuer) Validate(context.Context, string) (Claims, error) {
	return Claims{}, ErrUnsupported
}

// Revoke is a no-op; passthrough tokens are discarded client side
func (PassthroughIssuer) Revoke(context.Context, string) error {
	return nil
}
