package login

import (
	"errors"
	"fmt"

	"github.com/tendant/breadsaver/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher defines how passwords are stored and checked
type PasswordHasher interface {
	// Hash returns the value to store for password
	Hash(password string) (string, error)

	// Verify checks password against a stored value
	Verify(password, stored string) (bool, error)
}

// PlaintextHasher stores passwords verbatim.
//
// Insecure: anyone who can read the users table can read every password.
// It is the default only because existing accounts were stored this way;
// select BcryptHasher with PASSWORD_HASHER=bcrypt for new deployments.
type PlaintextHasher struct{}

func (PlaintextHasher) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextHasher) Verify(password, stored string) (bool, error) {
	return password == stored, nil
}

// BcryptHasher implements PasswordHasher using bcrypt
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Verify(password, stored string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		// A plaintext row left over from before the switch is not a valid hash.
		if errors.Is(err, bcrypt.ErrHashTooShort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewPasswordHasher selects the hasher named in cfg
func NewPasswordHasher(cfg config.PasswordConfig) (PasswordHasher, error) {
	switch cfg.Hasher {
	case config.PasswordHasherPlaintext, "":
		return PlaintextHasher{}, nil
	case config.PasswordHasherBcrypt:
		if cfg.BcryptCost != 0 && (cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("bcrypt cost %d out of range", cfg.BcryptCost)
		}
		return BcryptHasher{Cost: cfg.BcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", cfg.Hasher)
	}
}
