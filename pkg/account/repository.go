package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrBakeryNotFound = errors.New("bakery not found")
)

// Repository stores users and their bakeries.
//
// CreateUserIfAbsent and EnsureBakery are keyed on unique columns so two
// concurrent requests cannot create duplicate rows. Lookups return
// ErrUserNotFound or ErrBakeryNotFound when nothing matches.
type Repository interface {
	FindUserByEmail(ctx context.Context, email string) (User, error)
	FindUserByGoogleID(ctx context.Context, googleID string) (User, error)
	// FindUserByEmailOrGoogleID matches value against either column
	FindUserByEmailOrGoogleID(ctx context.Context, value string) (User, error)
	// FindPasswordUserByEmail only matches accounts that have a password
	FindPasswordUserByEmail(ctx context.Context, email string) (User, error)
	// CreateUserIfAbsent returns ErrUserExists when the email or Google id is taken
	CreateUserIfAbsent(ctx context.Context, params CreateUserParams) (User, error)
	// LinkGoogleAccount updates the user only if no Google id is attached yet.
	// linked is false when the account was already linked.
	LinkGoogleAccount(ctx context.Context, params LinkGoogleParams) (user User, linked bool, err error)
	FindBakeryByUserID(ctx context.Context, userID uuid.UUID) (Bakery, error)
	// EnsureBakery creates the user's bakery unless one exists.
	// created is false when an existing bakery is returned.
	EnsureBakery(ctx context.Context, userID uuid.UUID, name string) (bakery Bakery, created bool, err error)
}
