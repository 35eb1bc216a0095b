package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

const (
	DefaultPort           = 3318
	DefaultTokenTTL       = 24 * time.Hour
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"
	DefaultAnthropicURL   = "https://api.anthropic.com/v1/messages"
	DefaultAuthRate       = 30
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	JWTSecret string
	TokenTTL  time.Duration

	AnthropicKey   string
	AnthropicModel string
	AnthropicURL   string

	SlackWebhookURL string

	// Requests per minute per IP on /api/auth; 0 disables limiting
	AuthRatePerMin int
	// Key rate limits by X-Forwarded-For; only behind a trusted proxy
	TrustProxy bool

	LogLevel  string
	LogFormat string

	// bcrypt cost; 0 means bcrypt.DefaultCost. Tests lower it.
	PasswordCost int
}

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("onewave", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Access token signing secret (prefer env)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "Access token lifetime")
	fs.StringVar(&cfg.AnthropicKey, "anthropic-key", "", "Anthropic API key (prefer env)")
	fs.StringVar(&cfg.AnthropicModel, "anthropic-model", "", "Anthropic model for idea analysis")
	fs.StringVar(&cfg.AnthropicURL, "anthropic-url", "", "Anthropic Messages API endpoint")
	fs.StringVar(&cfg.SlackWebhookURL, "slack-webhook", "", "Slack incoming webhook for team applications")

	authRate := fs.Int("auth-rate", -1, "Auth requests per minute per IP (0 disables)")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Rate limit by X-Forwarded-For (only behind a proxy)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (json or text)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.TokenTTL == 0 {
		if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_TTL env variable")
			}
			cfg.TokenTTL = ttl
		} else {
			cfg.TokenTTL = DefaultTokenTTL
		}
	}
	if cfg.TokenTTL < 0 {
		return Config{}, errors.New("token TTL must be positive")
	}

	// Optional integrations
	if cfg.AnthropicKey == "" {
		cfg.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.AnthropicModel == "" {
		cfg.AnthropicModel = getEnv("ANTHROPIC_MODEL", DefaultAnthropicModel)
	}
	if cfg.AnthropicURL == "" {
		cfg.AnthropicURL = getEnv("ANTHROPIC_URL", DefaultAnthropicURL)
	}
	if cfg.SlackWebhookURL == "" {
		cfg.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	}

	cfg.AuthRatePerMin = *authRate
	if cfg.AuthRatePerMin < 0 {
		if rateStr := os.Getenv("AUTH_RATE_PER_MIN"); rateStr != "" {
			rate, err := strconv.Atoi(rateStr)
			if err != nil || rate < 0 {
				return Config{}, errors.New("invalid AUTH_RATE_PER_MIN env variable")
			}
			cfg.AuthRatePerMin = rate
		} else {
			cfg.AuthRatePerMin = DefaultAuthRate
		}
	}

	if !cfg.TrustProxy {
		if v := os.Getenv("TRUST_PROXY"); v != "" {
			trust, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = getEnv("LOG_LEVEL", "INFO")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = getEnv("LOG_FORMAT", "text")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
