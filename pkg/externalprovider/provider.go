package externalprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/tendant/breadsaver/pkg/config"
	apperrors "github.com/tendant/breadsaver/pkg/errors"
	"github.com/tendant/breadsaver/pkg/intent"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	GoogleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var GoogleScopes = []string{"openid", "email", "profile"}

// ExternalUserInfo is the Google profile used to find or create an account
type ExternalUserInfo struct {
	ExternalID    string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// IdentityProvider is the client side of the authorization code flow
type IdentityProvider interface {
	BuildAuthURL(d intent.Descriptor) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, token *oauth2.Token) (*ExternalUserInfo, error)
}

// GoogleProvider talks to Google's OAuth 2.0 and userinfo endpoints
type GoogleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

// NewGoogleProvider builds a provider for the given client registration.
// redirectURL must match the URI registered with Google.
func NewGoogleProvider(cfg config.GoogleConfig, redirectURL string) *GoogleProvider {
	endpoint := endpoints.Google
	endpoint.AuthURL = GoogleAuthURL
	endpoint.AuthStyle = oauth2.AuthStyleInParams
	if cfg.AuthURL != "" {
		endpoint.AuthURL = cfg.AuthURL
	}
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	userInfoURL := GoogleUserInfoURL
	if cfg.UserInfoURL != "" {
		userInfoURL = cfg.UserInfoURL
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirectURL,
			Scopes:       GoogleScopes,
		},
		userInfoURL: userInfoURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// BuildAuthURL returns the consent screen URL carrying d as the state.
// Offline access and a forced consent prompt are always requested.
func (p *GoogleProvider) BuildAuthURL(d intent.Descriptor) string {
	return p.oauth.AuthCodeURL(d.Encode(), oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (p *GoogleProvider) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// ExchangeCode trades an authorization code for tokens. A rejection by Google
// is reported as a ProviderExchange error.
func (p *GoogleProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.oauth.Exchange(p.clientContext(ctx), code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			slog.Warn("Token exchange rejected", "status", retrieveErr.Response.StatusCode, "error_code", retrieveErr.ErrorCode)
			return nil, apperrors.ProviderExchange(err)
		}
		return nil, fmt.Errorf("failed to make token request: %w", err)
	}

	slog.Info("Token exchange successful", "provider", "google", "token_type", token.TokenType)
	return token, nil
}

// FetchProfile reads the userinfo document with the access token. A non-200
// response is reported as a ProviderProfile error.
func (p *GoogleProvider) FetchProfile(ctx context.Context, token *oauth2.Token) (*ExternalUserInfo, error) {
	ctx = p.clientContext(ctx)
	client := p.oauth.Client(ctx, token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create user info request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make user info request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read user info response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ProviderProfile(fmt.Errorf("user info request failed with status %d", resp.StatusCode))
	}

	var info ExternalUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	slog.Info("User info retrieved", "provider", "google", "external_id", info.ExternalID, "email", info.Email)
	return &info, nil
}
