package config

import "time"

// GoogleConfig holds the OAuth client registration and endpoint overrides.
// The endpoint fields are empty in production; tests point them at a fake server.
type GoogleConfig struct {
	ClientID     string        `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string        `env:"GOOGLE_CLIENT_SECRET"`
	AuthURL      string        `env:"GOOGLE_AUTH_URL"`
	TokenURL     string        `env:"GOOGLE_TOKEN_URL"`
	UserInfoURL  string        `env:"GOOGLE_USERINFO_URL"`
	HTTPTimeout  time.Duration `env:"PROVIDER_HTTP_TIMEOUT" env-default:"30s"`
}

// IsConfigured returns true if both client credentials are set
func (c GoogleConfig) IsConfigured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}
