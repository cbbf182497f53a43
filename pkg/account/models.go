package account

import (
	"time"

	"github.com/google/uuid"
)

// BranchType is the bakery layout chosen at signup
type BranchType string

const (
	BranchSingle   BranchType = "single"
	BranchMultiple BranchType = "multiple"
)

// User is a bakery owner account. It is reachable by Email, or by GoogleID once
// linked. Password is nil for accounts created through Google.
type User struct {
	ID            uuid.UUID
	Email         string
	Password      *string
	GoogleID      *string
	Name          string
	Picture       string
	VerifiedEmail bool
	BranchType    BranchType
	BakeryName    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPassword reports whether the account can use password login
func (u User) HasPassword() bool {
	return u.Password != nil
}

// IsLinked reports whether a Google account has been attached
func (u User) IsLinked() bool {
	return u.GoogleID != nil && *u.GoogleID != ""
}

// Bakery is the single bakery owned by a User
type Bakery struct {
	ID        uuid.UUID
	Name      string
	UserID    uuid.UUID
	CreatedAt time.Time
}

// CreateUserParams holds the fields of a new account
type CreateUserParams struct {
	Email         string
	Password      *string
	GoogleID      *string
	Name          string
	Picture       string
	VerifiedEmail bool
	BranchType    BranchType
	BakeryName    string
}

// LinkGoogleParams attaches a Google identity to an existing account.
// An empty Picture keeps the stored one; VerifiedEmail is OR-ed with the stored flag.
type LinkGoogleParams struct {
	UserID        uuid.UUID
	GoogleID      string
	Picture       string
	VerifiedEmail bool
}
