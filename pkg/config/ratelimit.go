package config

// RateLimitConfig throttles password signup and login per client IP
type RateLimitConfig struct {
	Enabled   bool    `env:"RATE_LIMIT_ENABLED" env-default:"true"`
	Burst     int     `env:"RATE_LIMIT_BURST" env-default:"10"`
	PerMinute float64 `env:"RATE_LIMIT_PER_MINUTE" env-default:"10"`
}
