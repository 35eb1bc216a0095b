// cliparse/cliparse_test.go
package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("AUTH_RATE_PER_MIN", "5")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 2*time.Hour {
		t.Errorf("expected TTL 2h, got %s", cfg.TokenTTL)
	}
	if cfg.AuthRatePerMin != 5 {
		t.Errorf("expected auth rate 5, got %d", cfg.AuthRatePerMin)
	}
	if !cfg.TrustProxy {
		t.Error("expected TRUST_PROXY to enable proxy trust")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-jwt-secret", "cli-secret", "-auth-rate", "0"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.JWTSecret != "cli-secret" {
		t.Errorf("CLI should override env: expected cli-secret, got %s", cfg.JWTSecret)
	}
	if cfg.AuthRatePerMin != 0 {
		t.Errorf("expected auth rate 0 (disabled), got %d", cfg.AuthRatePerMin)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("AUTH_RATE_PER_MIN", "")
	t.Setenv("ANTHROPIC_MODEL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("TRUST_PROXY", "")

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-jwt-secret", "s"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.TokenTTL != DefaultTokenTTL {
		t.Errorf("expected default TTL, got %s", cfg.TokenTTL)
	}
	if cfg.AuthRatePerMin != DefaultAuthRate {
		t.Errorf("expected default auth rate, got %d", cfg.AuthRatePerMin)
	}
	if cfg.AnthropicModel != DefaultAnthropicModel {
		t.Errorf("expected default model, got %s", cfg.AnthropicModel)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("expected INFO, got %s", cfg.LogLevel)
	}
	if cfg.TrustProxy {
		t.Error("expected forwarded headers to be untrusted by default")
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database", map[string]string{"DATABASE_URL": "", "JWT_SECRET": "s"}, nil},
		{"missing secret", map[string]string{"JWT_SECRET": ""}, []string{"-d", "file:x.db"}},
		{"bad port", map[string]string{"PORT": "abc"}, []string{"-d", "file:x.db", "-jwt-secret", "s"}},
		{"bad db type", nil, []string{"-d", "file:x.db", "-t", "mysql", "-jwt-secret", "s"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "soon", "PORT": ""}, []string{"-d", "file:x.db", "-jwt-secret", "s"}},
		{"bad trust proxy", map[string]string{"TRUST_PROXY": "maybe", "PORT": "", "TOKEN_TTL": ""}, []string{"-d", "file:x.db", "-jwt-secret", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
