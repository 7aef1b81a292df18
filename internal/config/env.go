package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with environment variables, loading a .env file
// first if one exists in the working directory. Unparseable durations are
// ignored.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SHOPCART_STORE_DSN"); v != "" {
		cfg.StoreDSN = v
	}
	if v := os.Getenv("SHOPCART_LOCAL_DB"); v != "" {
		cfg.LocalDBPath = v
	}
	if v := os.Getenv("SHOPCART_TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
}
