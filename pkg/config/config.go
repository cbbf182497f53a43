package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/chi-demo/app"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	// DefaultPort matches the default BASE_URL. chi-demo's own default is 4000.
	DefaultPort = 3000
)

// Config is the complete runtime configuration of the breadsaver binary
type Config struct {
	AppConfig       app.AppConfig
	DatabaseConfig  DatabaseConfig
	GoogleConfig    GoogleConfig
	SiteConfig      SiteConfig
	SessionConfig   SessionConfig
	RedisConfig     RedisConfig
	PasswordConfig  PasswordConfig
	RateLimitConfig RateLimitConfig
	LogConfig       LogConfig

	Store          string `env:"ACCOUNT_STORE" env-default:"postgres"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" env-default:"true"`
}

// Load reads the configuration from the environment and validates it
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if _, ok := os.LookupEnv("PORT"); !ok {
		cfg.AppConfig.Port = DefaultPort
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings
func (c Config) Validate() error {
	if err := oneOf("ACCOUNT_STORE", c.Store, StoreMemory, StorePostgres); err != nil {
		return err
	}
	if err := oneOf("SESSION_ISSUER", c.SessionConfig.Issuer, SessionIssuerPassthrough, SessionIssuerJWT); err != nil {
		return err
	}
	if err := oneOf("SESSION_REVOCATION", c.SessionConfig.Revocation, RevocationMemory, RevocationRedis); err != nil {
		return err
	}
	if err := oneOf("PASSWORD_HASHER", c.PasswordConfig.Hasher, PasswordHasherPlaintext, PasswordHasherBcrypt); err != nil {
		return err
	}
	if c.SessionConfig.Issuer == SessionIssuerJWT && c.SessionConfig.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when SESSION_ISSUER=jwt")
	}
	return nil
}

func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q, expected one of %v", name, value, allowed)
}
