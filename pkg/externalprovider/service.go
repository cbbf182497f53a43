package externalprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/tendant/breadsaver/pkg/account"
	apperrors "github.com/tendant/breadsaver/pkg/errors"
	"github.com/tendant/breadsaver/pkg/intent"
	"github.com/tendant/breadsaver/pkg/session"
)

const (
	ActionLoginFailed  = "login_failed"
	ActionSignupFailed = "signup_failed"

	MessageUserNotFound = "User not found. Please sign up first."
	MessageUserExists   = "An account with this email already exists. Please login instead."

	MessageGoogleAccountInUse = "This Google account is already linked to another user."
)

// ExternalProviderService runs the Google sign in round trip and links the
// resulting identity to a bakery owner account.
type ExternalProviderService struct {
	repository      account.Repository
	provider        IdentityProvider
	issuer          session.Issuer
	callbackPageURL string
}

// Option is a function that configures an ExternalProviderService
type Option func(*ExternalProviderService)

// WithCallbackPageURL sets the browser page redirected to after the callback
func WithCallbackPageURL(u string) Option {
	return func(s *ExternalProviderService) {
		s.callbackPageURL = u
	}
}

// WithSessionIssuer sets the issuer of the token handed to the browser
func WithSessionIssuer(issuer session.Issuer) Option {
	return func(s *ExternalProviderService) {
		s.issuer = issuer
	}
}

// NewExternalProviderService creates a new external provider service with functional options
func NewExternalProviderService(repository account.Repository, provider IdentityProvider, opts ...Option) *ExternalProviderService {
	s := &ExternalProviderService{
		repository:      repository,
		provider:        provider,
		issuer:          session.NewPassthroughIssuer(),
		callbackPageURL: "http://localhost:3000/auth/callback",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitiateOAuth2Flow returns the provider URL the browser should be sent to
func (s *ExternalProviderService) InitiateOAuth2Flow(ctx context.Context, action, state string) string {
	d := intent.FromRequest(action, state)
	authURL := s.provider.BuildAuthURL(d)
	slog.InfoContext(ctx, "OAuth2 flow initiated", "provider", "google", "action", d.Action, "branch_type", d.BranchType)
	return authURL
}

// HandleOAuth2Callback completes the flow and returns the redirect to the
// callback page. Account mismatches are soft failures reported through the
// redirect; every other failure is returned as an error.
func (s *ExternalProviderService) HandleOAuth2Callback(ctx context.Context, code, state string) (string, error) {
	d, _ := intent.Decode(state)

	if code == "" {
		return "", apperrors.MissingCode()
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return "", err
	}

	info, err := s.provider.FetchProfile(ctx, token)
	if err != nil {
		return "", err
	}

	existing, err := s.repository.FindUserByEmail(ctx, info.Email)
	found := err == nil
	if err != nil && !errors.Is(err, account.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	var user account.User
	if d.IsLogin() {
		if !found {
			slog.WarnContext(ctx, "Google login for unknown email", "email", info.Email)
			return s.failureRedirect(MessageUserNotFound, ActionLoginFailed), nil
		}
		user, err = s.linkIfNeeded(ctx, existing, info)
		if err != nil {
			return "", err
		}
	} else {
		if found {
			slog.WarnContext(ctx, "Google signup for existing email", "email", info.Email, "user_id", existing.ID)
			return s.failureRedirect(MessageUserExists, ActionSignupFailed), nil
		}
		if err := s.createUser(ctx, d, info); err != nil {
			if errors.Is(err, account.ErrUserExists) {
				return s.conflictRedirect(ctx, info)
			}
			return "", err
		}

		user, err = s.repository.FindUserByGoogleID(ctx, info.ExternalID)
		if err != nil {
			if errors.Is(err, account.ErrUserNotFound) {
				return "", apperrors.AccountResolution()
			}
			return "", fmt.Errorf("failed to retrieve created user: %w", err)
		}
	}

	if err := s.ensureBakery(ctx, user); err != nil {
		return "", err
	}

	sessionToken, err := s.issuer.Issue(ctx, session.Subject{
		UserID:        user.ID,
		Email:         user.Email,
		ProviderToken: token.AccessToken,
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	return s.successRedirect(user, sessionToken, string(d.Action))
}

func (s *ExternalProviderService) linkIfNeeded(ctx context.Context, user account.User, info *ExternalUserInfo) (account.User, error) {
	if user.IsLinked() {
		return user, nil
	}

	linked, changed, err := s.repository.LinkGoogleAccount(ctx, account.LinkGoogleParams{
		UserID:        user.ID,
		GoogleID:      info.ExternalID,
		Picture:       info.Picture,
		VerifiedEmail: info.EmailVerified,
	})
	if err != nil {
		return account.User{}, fmt.Errorf("failed to link google account: %w", err)
	}
	if changed {
		slog.InfoContext(ctx, "Google account linked", "user_id", linked.ID, "external_id", info.ExternalID)
	}
	return linked, nil
}

func (s *ExternalProviderService) createUser(ctx context.Context, d intent.Descriptor, info *ExternalUserInfo) error {
	bakeryName := d.BakeryName
	if bakeryName == "" {
		bakeryName = account.DefaultBakeryName(info.Name)
	}

	googleID := info.ExternalID
	user, err := s.repository.CreateUserIfAbsent(ctx, account.CreateUserParams{
		Email:         info.Email,
		GoogleID:      &googleID,
		Name:          info.Name,
		Picture:       info.Picture,
		VerifiedEmail: info.EmailVerified,
		BranchType:    d.BranchType,
		BakeryName:    bakeryName,
	})
	if err != nil {
		if errors.Is(err, account.ErrUserExists) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	slog.InfoContext(ctx, "User created from Google profile", "user_id", user.ID, "branch_type", user.BranchType)
	return nil
}

// conflictRedirect tells an email taken by a concurrent signup apart from a
// Google id already linked to an account with a different email.
func (s *ExternalProviderService) conflictRedirect(ctx context.Context, info *ExternalUserInfo) (string, error) {
	_, err := s.repository.FindUserByEmail(ctx, info.Email)
	switch {
	case err == nil:
		slog.WarnContext(ctx, "Google signup lost race for email", "email", info.Email)
		return s.failureRedirect(MessageUserExists, ActionSignupFailed), nil
	case errors.Is(err, account.ErrUserNotFound):
		slog.WarnContext(ctx, "Google account linked to another user", "email", info.Email, "external_id", info.ExternalID)
		return s.failureRedirect(MessageGoogleAccountInUse, ActionSignupFailed), nil
	default:
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
}

func (s *ExternalProviderService) ensureBakery(ctx context.Context, user account.User) error {
	if user.BakeryName == "" {
		return nil
	}
	bakery, created, err := s.repository.EnsureBakery(ctx, user.ID, user.BakeryName)
	if err != nil {
		return fmt.Errorf("failed to ensure bakery: %w", err)
	}
	if created {
		slog.InfoContext(ctx, "Bakery created", "user_id", user.ID, "bakery_id", bakery.ID)
	}
	return nil
}

func (s *ExternalProviderService) failureRedirect(message, action string) string {
	q := url.Values{}
	q.Set("error", message)
	q.Set("action", action)
	return s.callbackPageURL + "?" + q.Encode()
}

func (s *ExternalProviderService) successRedirect(user account.User, token, action string) (string, error) {
	profile, err := json.Marshal(account.NewProfileView(user))
	if err != nil {
		return "", fmt.Errorf("failed to encode user: %w", err)
	}

	q := url.Values{}
	q.Set("user", string(profile))
	q.Set("token", token)
	q.Set("action", action)
	return s.callbackPageURL + "?" + q.Encode(), nil
}
