package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Base URL of the Turnero backend, e.g. http://localhost:3000.
	APIBaseURL string

	// Web UI.
	ListenAddr     string
	CookieHashKey  []byte
	CookieBlockKey []byte

	// Secret used to derive the key for the on-disk token cache.
	CacheSecret string

	// Optional local booking-history database. Empty disables history.
	DatabaseURL string

	LogLevel string
}

// FromEnv loads configuration from the environment, reading a .env file first
// if one exists.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:  getenv("TURNERO_API_URL", "http://localhost:3000"),
		ListenAddr:  getenv("TURNERO_LISTEN_ADDR", ":8080"),
		CacheSecret: os.Getenv("TURNERO_CACHE_SECRET"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getenv("TURNERO_LOG_LEVEL", "info"),
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	var err error
	if cfg.CookieHashKey, err = optionalKey("TURNERO_COOKIE_HASH_KEY"); err != nil {
		return Config{}, err
	}
	if cfg.CookieBlockKey, err = optionalKey("TURNERO_COOKIE_BLOCK_KEY"); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequireWebKeys validates the cookie keys needed by the serve command. The
// CLI commands do not need them, so FromEnv leaves them optional.
func (c Config) RequireWebKeys() error {
	if len(c.CookieHashKey) == 0 || len(c.CookieBlockKey) == 0 {
		return fmt.Errorf("TURNERO_COOKIE_HASH_KEY and TURNERO_COOKIE_BLOCK_KEY are required (base64, 32 bytes)")
	}
	return nil
}

func optionalKey(name string) ([]byte, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
