package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultExpiry = 24 * time.Hour

type jwtClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWTIssuer issues HS256 tokens and checks them against a RevocationStore
type JWTIssuer struct {
	secret  []byte
	issuer  string
	expiry  time.Duration
	revoked RevocationStore
	now     func() time.Time
}

type JWTOption func(*JWTIssuer)

func WithIssuerName(name string) JWTOption {
	return func(j *JWTIssuer) {
		j.issuer = name
	}
}

func WithExpiry(expiry time.Duration) JWTOption {
	return func(j *JWTIssuer) {
		if expiry > 0 {
			j.expiry = expiry
		}
	}
}

func WithRevocationStore(store RevocationStore) JWTOption {
	return func(j *JWTIssuer) {
		j.revoked = store
	}
}

// WithClock overrides time.Now
func WithClock(now func() time.Time) JWTOption {
	return func(j *JWTIssuer) {
		j.now = now
	}
}

func NewJWTIssuer(secret string, opts ...JWTOption) *JWTIssuer {
	j := &JWTIssuer{
		secret:  []byte(secret),
		issuer:  "breadsaver",
		expiry:  DefaultExpiry,
		revoked: NewMemoryRevocationStore(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *JWTIssuer) Issue(_ context.Context, subject Subject) (string, error) {
	now := j.now()
	claims := jwtClaims{
		Email: subject.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject.UserID.String(),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (j *JWTIssuer) parse(token string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	return claims, nil
}

func (j *JWTIssuer) Validate(ctx context.Context, token string) (Claims, error) {
	claims, err := j.parse(token)
	if err != nil {
		return Claims{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrTokenInvalid)
	}

	revoked, err := j.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to check revocation: %w", err)
	}
	if revoked {
		return Claims{}, ErrTokenRevoked
	}

	return Claims{
		ID:        claims.ID,
		UserID:    userID,
		Email:     claims.Email,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke blocks the token until it would have expired anyway
func (j *JWTIssuer) Revoke(ctx context.Context, token string) error {
	claims, err := j.parse(token)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Time.Sub(j.now())
	if ttl <= 0 {
		return nil
	}
	return j.revoked.Revoke(ctx, claims.ID, ttl)
}
