package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ADDR", "DB_PATH", "SECRET_KEY", "ADMIN_PASSWORD", "ALLOWED_ORIGIN", "REDIRECTS_FILE", "COOKIE_SECURE", "ENV", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

// TestLoad_Defaults applies the development defaults.
func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AllowedOrigin != "*" {
		t.Errorf("AllowedOrigin = %q, want *", cfg.AllowedOrigin)
	}
	if cfg.DBPath != "submissions.db" || cfg.Addr != ":8080" {
		t.Errorf("DBPath=%q Addr=%q", cfg.DBPath, cfg.Addr)
	}
	if cfg.AdminPassword != DefaultSecret || cfg.SecretKey != DefaultSecret {
		t.Errorf("secrets should fall back to the placeholder")
	}
}

// TestLoad_Environment reads explicit values.
func TestLoad_Environment(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGIN", "https://naphtha.example")
	t.Setenv("ADMIN_PASSWORD", "hunter22")
	t.Setenv("SECRET_KEY", "long-random-string")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ENV", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AllowedOrigin != "https://naphtha.example" || cfg.AdminPassword != "hunter22" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.CookieSecure || !cfg.IsProduction() {
		t.Errorf("CookieSecure=%v production=%v", cfg.CookieSecure, cfg.IsProduction())
	}
}

// TestLoad_ProductionRejectsPlaceholder refuses to start with default secrets.
func TestLoad_ProductionRejectsPlaceholder(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("SECRET_KEY", "set")

	if _, err := Load(); !errors.Is(err, ErrDefaultSecret) {
		t.Fatalf("err = %v, want ErrDefaultSecret", err)
	}
}

// TestLoad_DotEnv reads values from a .env file without overriding the environment.
func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	os.Unsetenv("ADMIN_PASSWORD")
	os.Unsetenv("ALLOWED_ORIGIN")
	t.Setenv("DB_PATH", "from-env.db")
	env := "ADMIN_PASSWORD=from-dotenv\nALLOWED_ORIGIN=https://site.example\nDB_PATH=from-file.db\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("ADMIN_PASSWORD")
		os.Unsetenv("ALLOWED_ORIGIN")
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdminPassword != "from-dotenv" || cfg.AllowedOrigin != "https://site.example" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DBPath != "from-env.db" {
		t.Errorf("DBPath = %q, environment should win over .env", cfg.DBPath)
	}
}

// TestCSRFKey_Deterministic derives the same 32 bytes from the same secret.
func TestCSRFKey_Deterministic(t *testing.T) {
	a := Config{SecretKey: "alpha"}.CSRFKey()
	b := Config{SecretKey: "alpha"}.CSRFKey()
	c := Config{SecretKey: "beta"}.CSRFKey()
	if len(a) != 32 {
		t.Fatalf("len = %d, want 32", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Error("same secret should derive the same key")
	}
	if bytes.Equal(a, c) {
		t.Error("different secrets should derive different keys")
	}
}

func TestUsesDefaultSecret(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"both set", Config{SecretKey: "s", AdminPassword: "p"}, false},
		{"secret default", Config{SecretKey: DefaultSecret, AdminPassword: "p"}, true},
		{"password default", Config{SecretKey: "s", AdminPassword: DefaultSecret}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.UsesDefaultSecret(); got != tt.want {
				t.Errorf("UsesDefaultSecret() = %v, want %v", got, tt.want)
			}
		})
	}
}
