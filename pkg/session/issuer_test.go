package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassthroughIssuer(t *testing.T) {
	ctx := context.Background()
	issuer := NewPassthroughIssuer()

	t.Run("provider token is passed through", func(t *testing.T) {
		token, err := issuer.Issue(ctx, Subject{UserID: uuid.New(), ProviderToken: "ya29.access"})
		require.NoError(t, err)
		assert.Equal(t, "ya29.access", token)
	})

	t.Run("password login gets placeholder", func(t *testing.T) {
		token, err := issuer.Issue(ctx, Subject{UserID: uuid.New(), Email: "a@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "email-login-token", token)
	})

	t.Run("cannot validate", func(t *testing.T) {
		_, err := issuer.Validate(ctx, "email-login-token")
		assert.ErrorIs(t, err, ErrUnsupported)
	})

	t.Run("revoke is a no-op", func(t *testing.T) {
		assert.NoError(t, issuer.Revoke(ctx, "anything"))
	})
}

func TestJWTIssuer_IssueAndValidate(t *testing.T) {
	ctx := context.Background()
	issuer := NewJWTIssuer("test-secret", WithIssuerName("breadsaver-test"), WithExpiry(time.Hour))
	userID := uuid.New()

	token, err := issuer.Issue(ctx, Subject{UserID: userID, Email: "a@example.com", ProviderToken: "ignored"})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", token)

	claims, err := issuer.Validate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestJWTIssuer_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	issuer := NewJWTIssuer("test-secret")
	subject := Subject{UserID: uuid.New()}

	a, err := issuer.Issue(ctx, subject)
	require.NoError(t, err)
	b, err := issuer.Issue(ctx, subject)
	require.NoError(t, err)

	ca, err := issuer.Validate(ctx, a)
	require.NoError(t, err)
	cb, err := issuer.Validate(ctx, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	ctx := context.Background()
	issuer := NewJWTIssuer("test-secret")
	subject := Subject{UserID: uuid.New()}

	valid, err := issuer.Issue(ctx, subject)
	require.NoError(t, err)

	otherSecret, err := NewJWTIssuer("other-secret").Issue(ctx, subject)
	require.NoError(t, err)

	otherIssuer, err := NewJWTIssuer("test-secret", WithIssuerName("someone-else")).Issue(ctx, subject)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   subject.UserID.String(),
		Issuer:    "breadsaver",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"placeholder", PasswordLoginToken},
		{"tampered", valid + "x"},
		{"wrong secret", otherSecret},
		{"wrong issuer", otherIssuer},
		{"alg none", none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Validate(ctx, tt.token)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestJWTIssuer_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	issuer := NewJWTIssuer("test-secret", WithExpiry(time.Minute), WithClock(func() time.Time { return now }))

	token, err := issuer.Issue(ctx, Subject{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = issuer.Validate(ctx, token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = issuer.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTIssuer_Revoke(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()
	issuer := NewJWTIssuer("test-secret", WithRevocationStore(store))

	token, err := issuer.Issue(ctx, Subject{UserID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(ctx, token))

	_, err = issuer.Validate(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)

	assert.ErrorIs(t, issuer.Revoke(ctx, "not-a-jwt"), ErrTokenInvalid)
}
