package login

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/breadsaver/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func TestPlaintextHasher(t *testing.T) {
	h := PlaintextHasher{}

	stored, err := h.Hash("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored)

	ok, err := h.Verify("secret", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("Secret", stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	t.Run("ValidPassword", func(t *testing.T) {
		stored, err := h.Hash("validPassword123")
		require.NoError(t, err)
		assert.NotEqual(t, "validPassword123", stored)

		ok, err := h.Verify("validPassword123", stored)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("IncorrectPassword", func(t *testing.T) {
		stored, err := h.Hash("correctPassword")
		require.NoError(t, err)

		ok, err := h.Verify("incorrectPassword", stored)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		_, err := h.Hash("")
		assert.Error(t, err)
	})

	t.Run("LegacyPlaintextRow", func(t *testing.T) {
		ok, err := h.Verify("pw", "pw")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher(config.PasswordConfig{Hasher: config.PasswordHasherPlaintext})
	require.NoError(t, err)
	assert.IsType(t, PlaintextHasher{}, h)

	h, err = NewPasswordHasher(config.PasswordConfig{Hasher: config.PasswordHasherBcrypt, BcryptCost: 12})
	require.NoError(t, err)
	assert.Equal(t, BcryptHasher{Cost: 12}, h)

	_, err = NewPasswordHasher(config.PasswordConfig{Hasher: config.PasswordHasherBcrypt, BcryptCost: 99})
	assert.Error(t, err)

	_, err = NewPasswordHasher(config.PasswordConfig{Hasher: "md5"})
	assert.Error(t, err)
}
