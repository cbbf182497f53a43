package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tendant/breadsaver/pkg/account"
	apperrors "github.com/tendant/breadsaver/pkg/errors"
	"github.com/tendant/breadsaver/pkg/session"
)

const MessageMissingFields = "Missing required fields: email, password"

// LoginResult is returned by a successful password login
type LoginResult struct {
	User  account.ProfileView
	Token string
}

// LoginService authenticates password accounts
type LoginService struct {
	repository account.Repository
	hasher     PasswordHasher
	issuer     session.Issuer
}

type Option func(*LoginService)

func WithPasswordHasher(hasher PasswordHasher) Option {
	return func(s *LoginService) {
		s.hasher = hasher
	}
}

func WithSessionIssuer(issuer session.Issuer) Option {
	return func(s *LoginService) {
		s.issuer = issuer
	}
}

func NewLoginService(repository account.Repository, opts ...Option) *LoginService {
	s := &LoginService{
		repository: repository,
		hasher:     PlaintextHasher{},
		issuer:     session.NewPassthroughIssuer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks email and password. Accounts without a password, unknown
// emails and wrong passwords all fail the same way.
func (s *LoginService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if email == "" || password == "" {
		return LoginResult{}, apperrors.MissingFields(MessageMissingFields)
	}

	user, err := s.repository.FindPasswordUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			slog.WarnContext(ctx, "Password login for unknown account")
			return LoginResult{}, apperrors.InvalidCredentials()
		}
		return LoginResult{}, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, *user.Password)
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		slog.WarnContext(ctx, "Password mismatch", "user_id", user.ID)
		return LoginResult{}, apperrors.InvalidCredentials()
	}

	token, err := s.issuer.Issue(ctx, session.Subject{UserID: user.ID, Email: user.Email})
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	slog.InfoContext(ctx, "Password login successful", "user_id", user.ID)
	return LoginResult{User: account.NewProfileView(user), Token: token}, nil
}

// Session returns the claims of a token minted by the session issuer
func (s *LoginService) Session(ctx context.Context, token string) (session.Claims, error) {
	claims, err := s.issuer.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrTokenInvalid) || errors.Is(err, session.ErrTokenRevoked) || errors.Is(err, session.ErrUnsupported) {
			return session.Claims{}, apperrors.TokenInvalid(err)
		}
		return session.Claims{}, err
	}
	return claims, nil
}

// Logout revokes token
func (s *LoginService) Logout(ctx context.Context, token string) error {
	if err := s.issuer.Revoke(ctx, token); err != nil {
		if errors.Is(err, session.ErrTokenInvalid) {
			return apperrors.TokenInvalid(err)
		}
		return err
	}
	return nil
}
