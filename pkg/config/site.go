package config

import "strings"

// SiteConfig holds the public origin used for provider redirect URIs and
// for redirects back to the browser pages.
type SiteConfig struct {
	BaseURL string `env:"BASE_URL" env-default:"http://localhost:3000"`
}

func (s SiteConfig) origin() string {
	return strings.TrimRight(s.BaseURL, "/")
}

// GoogleRedirectURL is the callback registered with the provider
func (s SiteConfig) GoogleRedirectURL() string {
	return s.origin() + "/api/auth/callback/google"
}

// CallbackPageURL is the browser page that bootstraps the client session
func (s SiteConfig) CallbackPageURL() string {
	return s.origin() + "/auth/callback"
}
