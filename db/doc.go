// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages its schema.

# Connections

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Postgres uses lib/pq. SQLite uses the pure-Go modernc driver with foreign
keys enabled, WAL journaling, a 5s busy timeout, and one open connection.
Handlers must therefore finish reading a result set before issuing another
query outside of it.

# Schema Creation

	err := db.CreateSchema(conn, cfg.DatabaseType)

Creates all tables if they don't exist. Safe to call on every startup.

# Tables

  - users: accounts (bcrypt password hash)
  - verification_code: hashed email codes keyed by (email, purpose)
  - idea: author-owned idea drafts
  - analysis: AI scores per idea, newest row is current
  - feed: published projection of an idea (one per idea)
  - feed_position: team seats per stack (capacity, filled)
  - feed_like: one row per (feed, user)
  - comment: append-only comments
  - application: team applications, UNIQUE (feed_id, user_id)
  - roadmap: saved questionnaire answers

# Dialects

Both dialects share column names and use $n placeholders, which modernc
sqlite accepts. Timestamps are written explicitly by the handlers so neither
dialect relies on a server-side default.
*/
package db
