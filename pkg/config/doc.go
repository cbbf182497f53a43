// Package config loads breadsaver configuration from the environment.
//
// Each concern has its own struct tagged for cleanenv. Load reads them all
// into a Config and rejects unknown values for the enumerated settings:
//
//	cfg, err := config.Load()
//	if err != nil {
//		slog.Error("Failed loading config", "error", err)
//		os.Exit(-1)
//	}
//	pool, err := dbutils.NewDbPool(ctx, cfg.DatabaseConfig.ToDbConfig())
//
// Environment variables:
//   - BASE_URL: public origin (default http://localhost:3000)
//   - GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET: provider registration
//   - PROVIDER_HTTP_TIMEOUT: timeout for provider calls (default 30s)
//   - ACCOUNT_STORE: postgres or memory
//   - BREADSAVER_PG_*: database connection
//   - SESSION_ISSUER: passthrough or jwt
//   - SESSION_REVOCATION: memory or redis, with REDIS_ADDR, REDIS_PASSWORD, REDIS_DB
//   - PASSWORD_HASHER: plaintext or bcrypt
//   - LOG_LEVEL, LOG_FORMAT
package config
