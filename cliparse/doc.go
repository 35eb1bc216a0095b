// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - JWTSecret: Access token signing secret (required)
  - TokenTTL: Access token lifetime (default: 24h)
  - AnthropicKey, AnthropicModel, AnthropicURL: AI analysis backend
  - SlackWebhookURL: Notification target for new team applications
  - AuthRatePerMin: Auth endpoint rate limit per IP (default: 30)
  - TrustProxy: Key the rate limit by X-Forwarded-For (default: false)
  - LogLevel, LogFormat: Logger settings

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-jwt-secret       Access token secret
	-token-ttl        Access token lifetime
	-anthropic-key    Anthropic API key
	-anthropic-model  Anthropic model
	-anthropic-url    Anthropic endpoint
	-slack-webhook    Slack webhook URL
	-auth-rate        Auth requests per minute
	-trust-proxy      Rate limit by forwarded client IP
	-log-level        Log level
	-log-format       Log format

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	JWT_SECRET        → -jwt-secret
	TOKEN_TTL         → -token-ttl
	ANTHROPIC_API_KEY → -anthropic-key
	ANTHROPIC_MODEL   → -anthropic-model
	ANTHROPIC_URL     → -anthropic-url
	SLACK_WEBHOOK_URL → -slack-webhook
	AUTH_RATE_PER_MIN → -auth-rate
	TRUST_PROXY       → -trust-proxy
	LOG_LEVEL         → -log-level
	LOG_FORMAT        → -log-format

CLI flags take precedence over environment variables. main loads a .env file
before parsing, so any of these may also live there.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - JWT_SECRET must be provided
*/
package cliparse
