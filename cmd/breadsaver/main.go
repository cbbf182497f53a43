// Command breadsaver serves the Bread Saver site and its account API.
//
// ACCOUNT_STORE=memory runs without a database; all accounts are lost when
// the process stops.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/tendant/breadsaver/migrations"
	"github.com/tendant/breadsaver/pkg/account"
	"github.com/tendant/breadsaver/pkg/config"
	"github.com/tendant/breadsaver/pkg/externalprovider"
	externalproviderapi "github.com/tendant/breadsaver/pkg/externalprovider/api"
	"github.com/tendant/breadsaver/pkg/login"
	"github.com/tendant/breadsaver/pkg/ratelimit"
	"github.com/tendant/breadsaver/pkg/router"
	"github.com/tendant/breadsaver/pkg/session"
	"github.com/tendant/breadsaver/pkg/signup"
	"github.com/tendant/breadsaver/pkg/web"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.LogConfig.NewLogger())

	slog.Info("Starting Bread Saver")
	slog.Info(strings.Repeat("=", 60))

	ctx := context.Background()

	repository, closeRepository := createRepository(ctx, cfg)
	defer closeRepository()

	issuer := createSessionIssuer(cfg.SessionConfig, cfg.RedisConfig)

	hasher, err := login.NewPasswordHasher(cfg.PasswordConfig)
	if err != nil {
		slog.Error("Failed to create password hasher", "error", err)
		os.Exit(1)
	}
	if cfg.PasswordConfig.Hasher == config.PasswordHasherPlaintext {
		slog.Warn("Passwords are stored and compared in plaintext. Set PASSWORD_HASHER=bcrypt for new deployments.")
	}

	if !cfg.GoogleConfig.IsConfigured() {
		slog.Warn("GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET is not set, Google sign in will fail")
	}
	provider := externalprovider.NewGoogleProvider(cfg.GoogleConfig, cfg.SiteConfig.GoogleRedirectURL())

	externalProviderService := externalprovider.NewExternalProviderService(
		repository,
		provider,
		externalprovider.WithCallbackPageURL(cfg.SiteConfig.CallbackPageURL()),
		externalprovider.WithSessionIssuer(issuer),
	)
	loginService := login.NewLoginService(
		repository,
		login.WithPasswordHasher(hasher),
		login.WithSessionIssuer(issuer),
	)
	signupService := signup.NewSignupService(
		repository,
		signup.WithPasswordHasher(hasher),
	)

	server := app.NewApp(
		app.WithAppConfig(cfg.AppConfig),
		app.WithCors(&cors.Options{
			AllowedOrigins:   []string{strings.TrimRight(cfg.SiteConfig.BaseURL, "/")},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		app.WithHttpin(true),
		app.WithMetrics(cfg.AppConfig.Metrics.Enabled),
		app.WithReqLogger(app.DefaultHttpLogger()),
	)
	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	var passwordLimiter *ratelimit.Limiter
	if cfg.RateLimitConfig.Enabled {
		passwordLimiter = ratelimit.NewLimiter(cfg.RateLimitConfig.Burst, cfg.RateLimitConfig.PerMinute)
	}

	router.SetupRoutes(server.R, router.Config{
		ExternalProviderHandle: externalproviderapi.NewHandle(externalProviderService),
		LoginHandle:            login.NewHandle(loginService),
		SignupHandle:           signup.NewHandle(signupService),
		PasswordLimiter:        passwordLimiter,
		WebHandle:              web.NewHandle(),
	})

	slog.Info(strings.Repeat("=", 60))
	slog.Info("Bread Saver ready", "addr", fmt.Sprintf("%s:%d", cfg.AppConfig.Host, cfg.AppConfig.Port), "base_url", cfg.SiteConfig.BaseURL, "store", cfg.Store, "session_issuer", cfg.SessionConfig.Issuer)
	slog.Info("  GET  /api/auth/google           - Start Google sign in")
	slog.Info("  GET  /api/auth/callback/google  - Google redirect target")
	slog.Info("  POST /api/auth/signup           - Password signup")
	slog.Info("  POST /api/auth/login            - Password login")
	slog.Info(strings.Repeat("=", 60))

	server.Run()
}

func createRepository(ctx context.Context, cfg config.Config) (account.Repository, func()) {
	if cfg.Store == config.StoreMemory {
		slog.Warn("Using in-memory account store, data is lost on restart")
		return account.NewInMemoryRepository(), func() {}
	}

	dbConfig := cfg.DatabaseConfig.ToDbConfig()
	pool, err := dbutils.NewDbPool(ctx, dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User, "error", err)
		os.Exit(1)
	}

	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.DatabaseConfig.ToMigrateURL()); err != nil {
			slog.Error("Failed to migrate database", "error", err)
			pool.Close()
			os.Exit(1)
		}
	}

	slog.Info("Database connected", "database", dbConfig.Database, "schema", cfg.DatabaseConfig.Schema)
	return account.NewPostgresRepository(pool), pool.Close
}

func createSessionIssuer(cfg config.SessionConfig, redisCfg config.RedisConfig) session.Issuer {
	if cfg.Issuer != config.SessionIssuerJWT {
		return session.NewPassthroughIssuer()
	}

	var store session.RevocationStore = session.NewMemoryRevocationStore()
	if cfg.Revocation == config.RevocationRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})
		store = session.NewRedisRevocationStore(rdb)
		slog.Info("Using Redis for session revocation", "addr", redisCfg.Addr)
	}

	return session.NewJWTIssuer(
		cfg.JWTSecret,
		session.WithIssuerName(cfg.JWTIssuer),
		session.WithExpiry(cfg.JWTExpiry),
		session.WithRevocationStore(store),
	)
}
