package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tendant/breadsaver/pkg/account"
	apperrors "github.com/tendant/breadsaver/pkg/errors"
	"github.com/tendant/breadsaver/pkg/login"
)

const (
	MessageMissingFields = "Missing required fields: email, password, bakeryName, branchType"
	MessageUserExists    = "User with this email already exists"
)

type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	BakeryName string `json:"bakeryName"`
	BranchType string `json:"branchType"`
}

// SignupService registers password accounts and their bakery
type SignupService struct {
	repository account.Repository
	hasher     login.PasswordHasher
}

type Option func(*SignupService)

func WithPasswordHasher(hasher login.PasswordHasher) Option {
	return func(s *SignupService) {
		s.hasher = hasher
	}
}

func NewSignupService(repository account.Repository, opts ...Option) *SignupService {
	s := &SignupService{
		repository: repository,
		hasher:     login.PlaintextHasher{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup creates the user and bakery. An email already used as an account
// email, or recorded as a Google id, is rejected.
func (s *SignupService) Signup(ctx context.Context, req SignupRequest) (account.UserView, error) {
	if req.Email == "" || req.Password == "" || req.BakeryName == "" || req.BranchType == "" {
		return account.UserView{}, apperrors.MissingFields(MessageMissingFields)
	}

	_, err := s.repository.FindUserByEmailOrGoogleID(ctx, req.Email)
	if err == nil {
		slog.WarnContext(ctx, "Signup for existing account", "email", req.Email)
		return account.UserView{}, apperrors.DuplicateAccount(MessageUserExists)
	}
	if !errors.Is(err, account.ErrUserNotFound) {
		return account.UserView{}, fmt.Errorf("failed to look up user: %w", err)
	}

	stored, err := s.hasher.Hash(req.Password)
	if err != nil {
		return account.UserView{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repository.CreateUserIfAbsent(ctx, account.CreateUserParams{
		Email:         req.Email,
		Password:      &stored,
		Name:          account.NameFromEmail(req.Email),
		VerifiedEmail: false,
		BranchType:    account.BranchType(req.BranchType),
		BakeryName:    req.BakeryName,
	})
	if err != nil {
		if errors.Is(err, account.ErrUserExists) {
			return account.UserView{}, apperrors.DuplicateAccount(MessageUserExists)
		}
		return account.UserView{}, fmt.Errorf("failed to create user: %w", err)
	}

	bakery, _, err := s.repository.EnsureBakery(ctx, user.ID, req.BakeryName)
	if err != nil {
		return account.UserView{}, fmt.Errorf("failed to create bakery: %w", err)
	}

	slog.InfoContext(ctx, "User signed up", "user_id", user.ID, "bakery_id", bakery.ID, "branch_type", user.BranchType)
	return account.NewUserView(user), nil
}
