package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/hkdf"
)

// DefaultSecret is the placeholder used for SECRET_KEY and ADMIN_PASSWORD when unset.
const DefaultSecret = "change-me-in-production"

// Config is built once at startup and passed explicitly to everything that needs it.
type Config struct {
	Addr          string
	DBPath        string
	SecretKey     string // signs the admin session cookie
	AdminPassword string
	AllowedOrigin string // CORS Allow-Origin value, a single origin or "*"
	RedirectsFile string // optional YAML rule file; empty uses the built-in table
	CookieSecure  bool
	Env           string
	LogLevel      string
}

var ErrDefaultSecret = errors.New("SECRET_KEY and ADMIN_PASSWORD must be set in production")

// Load reads an optional .env file and then the environment.
// PRE: none
// POST: returns a Config with defaults applied; in production default secrets are an error
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		Addr:          envOrDefault("ADDR", ":8080"),
		DBPath:        envOrDefault("DB_PATH", "submissions.db"),
		SecretKey:     envOrDefault("SECRET_KEY", DefaultSecret),
		AdminPassword: envOrDefault("ADMIN_PASSWORD", DefaultSecret),
		AllowedOrigin: envOrDefault("ALLOWED_ORIGIN", "*"),
		RedirectsFile: os.Getenv("REDIRECTS_FILE"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
		Env:           envOrDefault("ENV", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if cfg.UsesDefaultSecret() && cfg.IsProduction() {
		return Config{}, ErrDefaultSecret
	}
	return cfg, nil
}

// UsesDefaultSecret reports whether SECRET_KEY or ADMIN_PASSWORD is still the placeholder.
func (c Config) UsesDefaultSecret() bool {
	return c.SecretKey == DefaultSecret || c.AdminPassword == DefaultSecret
}

// IsProduction reports whether ENV=production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SessionKey returns the key that signs the session cookie.
func (c Config) SessionKey() []byte {
	return []byte(c.SecretKey)
}

// CSRFKey derives a 32-byte CSRF key from SecretKey so every worker agrees on it
// without a second secret.
// PRE: SecretKey is non-empty
// POST: returns the same 32 bytes for the same SecretKey
func (c Config) CSRFKey() []byte {
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(c.SecretKey), nil, []byte("naphtha csrf"))
	if _, err := io.ReadFull(r, key); err != nil {
		// hkdf only fails past 255*32 bytes of output
		panic(fmt.Sprintf("derive csrf key: %v", err))
	}
	return key
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
