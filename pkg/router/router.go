package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	externalproviderapi "github.com/tendant/breadsaver/pkg/externalprovider/api"
	"github.com/tendant/breadsaver/pkg/login"
	"github.com/tendant/breadsaver/pkg/ratelimit"
	"github.com/tendant/breadsaver/pkg/signup"
	"github.com/tendant/breadsaver/pkg/web"
)

// DefaultAuthPrefix is where the auth API is mounted unless Config overrides it
const DefaultAuthPrefix = "/api/auth"

// Config holds the handlers mounted by SetupRoutes
type Config struct {
	AuthPrefix string

	ExternalProviderHandle *externalproviderapi.Handle
	LoginHandle            *login.Handle
	SignupHandle           *signup.Handle

	// Optional. Applied to password signup and login when set.
	PasswordLimiter *ratelimit.Limiter

	// Optional. Pages are not mounted when nil.
	WebHandle *web.Handle
}

// SetupRoutes mounts the auth API and the browser pages on router
func SetupRoutes(router chi.Router, cfg Config) {
	prefix := cfg.AuthPrefix
	if prefix == "" {
		prefix = DefaultAuthPrefix
	}

	router.Route(prefix, func(r chi.Router) {
		r.Use(middleware.NoCache)
		cfg.ExternalProviderHandle.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			if cfg.PasswordLimiter != nil {
				r.Use(cfg.PasswordLimiter.Handler)
			}
			cfg.LoginHandle.RegisterRoutes(r)
			cfg.SignupHandle.RegisterRoutes(r)
		})
	})

	if cfg.WebHandle != nil {
		cfg.WebHandle.RegisterRoutes(router)
	}
}
