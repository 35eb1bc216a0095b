// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the onewave API server.

onewave helps founders validate startup ideas: draft an idea, get it scored,
publish it to a community feed for likes and comments, recruit teammates
into open positions, and pick a launch roadmap.

# Starting the Server

The server reads a .env file if present, then environment variables or CLI flags:

	JWT_SECRET=... DATABASE_URL=onewave.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --jwt-secret ...

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): access token signing secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TOKEN_TTL (--token-ttl): access token lifetime (default: 24h)
  - ANTHROPIC_API_KEY, ANTHROPIC_MODEL, ANTHROPIC_URL: AI idea analysis;
    without a key a built-in heuristic scores ideas
  - SLACK_WEBHOOK_URL (--slack-webhook): notify on new team applications
  - AUTH_RATE_PER_MIN (--auth-rate): per-IP auth rate limit (default: 30)
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, users, ideas, feeds, applications, roadmaps)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, rate limiting, JSON helpers
  - models: Request/response types
  - auth: Passwords, access tokens and verification codes
  - analysis: Idea scoring (Anthropic or heuristic)
  - notify: Verification code delivery and Slack notifications
  - roadmap: Static roadmap plan selection
  - metrics: Prometheus collectors
  - db: Connection and schema creation
  - cliparse: Configuration parsing

Client-side packages (apiclient, session, reconcile, teams) and the ideactl
command in cmd/ideactl talk to the API over HTTP.

See package documentation for each component.
*/
package main
