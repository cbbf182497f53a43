package account

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// UserView is the public projection returned by the password endpoints
type UserView struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Picture       string    `json:"picture"`
	VerifiedEmail bool      `json:"verified_email"`
}

// ProfileView is the projection handed to the browser after a Google callback
// or a password login
type ProfileView struct {
	ID            uuid.UUID  `json:"id"`
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	Picture       string     `json:"picture"`
	VerifiedEmail bool       `json:"verified_email"`
	BranchType    BranchType `json:"branchType"`
	BakeryName    string     `json:"bakeryName"`
}

func NewUserView(u User) UserView {
	var v UserView
	copier.Copy(&v, &u)
	return v
}

func NewProfileView(u User) ProfileView {
	var v ProfileView
	copier.Copy(&v, &u)
	return v
}

// DefaultBakeryName is used when a Google signup carries no bakery name
func DefaultBakeryName(displayName string) string {
	return displayName + "'s Bakery"
}

// NameFromEmail returns the local part of an email address
func NameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
