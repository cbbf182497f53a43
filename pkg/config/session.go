package config

import "time"

const (
	SessionIssuerPassthrough = "passthrough"
	SessionIssuerJWT         = "jwt"

	RevocationMemory = "memory"
	RevocationRedis  = "redis"
)

// SessionConfig selects how session tokens are issued and revoked
type SessionConfig struct {
	Issuer     string        `env:"SESSION_ISSUER" env-default:"passthrough"`
	JWTSecret  string        `env:"JWT_SECRET"`
	JWTIssuer  string        `env:"JWT_ISSUER" env-default:"breadsaver"`
	JWTExpiry  time.Duration `env:"JWT_EXPIRY" env-default:"24h"`
	Revocation string        `env:"SESSION_REVOCATION" env-default:"memory"`
}

// RedisConfig holds the connection settings for the revocation store
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" env-default:"0"`
}
