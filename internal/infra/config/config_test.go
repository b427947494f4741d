package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	t.Setenv("ACCESS_TOKEN_KEY", "access-secret")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30")
	t.Setenv("REFRESH_TOKEN_KEY", "refresh-secret")
	t.Setenv("REFRESH_TOKEN_EXPIRE_MINUTES", "1440")
}

func TestLoad_Success(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_ALGORITHM", "hs512")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("ALLOW_CREDENTIALS", "true")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("AccessTokenTTL want 30m, got %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 24*time.Hour {
		t.Fatalf("RefreshTokenTTL want 24h, got %v", cfg.RefreshTokenTTL)
	}
	if cfg.TokenAlgorithm != "HS512" {
		t.Fatalf("TokenAlgorithm want HS512, got %q", cfg.TokenAlgorithm)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://admin.example.com" {
		t.Fatalf("AllowedOrigins: %v", cfg.AllowedOrigins)
	}
	if !cfg.AllowCredentials {
		t.Fatal("AllowCredentials want true")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenAlgorithm != "HS256" {
		t.Fatalf("default algorithm: %q", cfg.TokenAlgorithm)
	}
	if cfg.HTTPAddress != ":8080" || cfg.GRPCAddress != ":50051" {
		t.Fatalf("default addresses: %q %q", cfg.HTTPAddress, cfg.GRPCAddress)
	}
	if cfg.UTCOffset != -3*time.Hour {
		t.Fatalf("default offset: %v", cfg.UTCOffset)
	}
	if cfg.RateLimitRPS != 50 || cfg.RateLimitBurst != 100 {
		t.Fatalf("default rate limit: %d/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := LoadFrom(""); err == nil {
		t.Fatal("expected error due to missing DATABASE_URL, got nil")
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"non-positive ttl": {"ACCESS_TOKEN_EXPIRE_MINUTES", "0"},
		"same keys":        {"REFRESH_TOKEN_KEY", "access-secret"},
		"rsa algorithm":    {"TOKEN_ALGORITHM", "RS256"},
		"offset too far":   {"CANONICAL_UTC_OFFSET_HOURS", "20"},
	}

	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(kv[0], kv[1])
			if _, err := LoadFrom(""); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	setRequired(t)
	// t.Setenv restores the previous value; unset so the file can provide it.
	t.Setenv("PASSWORD_PEPPER", "")
	os.Unsetenv("PASSWORD_PEPPER")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("PASSWORD_PEPPER=from-file\nACCESS_TOKEN_KEY=ignored\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PasswordPepper != "from-file" {
		t.Fatalf("pepper from .env: %q", cfg.PasswordPepper)
	}
	if cfg.AccessTokenKey != "access-secret" {
		t.Fatalf("exported variable must win, got %q", cfg.AccessTokenKey)
	}
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	setRequired(t)

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing .env must be ignored: %v", err)
	}
}
