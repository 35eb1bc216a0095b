// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to a postgres or sqlite database and verifies the connection.
// SQLite connections get foreign keys, WAL and a busy timeout, and are
// limited to a single open connection.
func Open(dbType, url string) (*sql.DB, error) {
	var conn *sql.DB
	var err error

	switch dbType {
	case TypePostgres:
		conn, err = sql.Open("postgres", url)
	case TypeSQLite:
		conn, err = sql.Open("sqlite", withSQLitePragmas(url))
		if err == nil {
			conn.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

func withSQLitePragmas(url string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if strings.Contains(url, "?") {
		return url + "&" + pragmas
	}
	return url + "?" + pragmas
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dbType string) error {
	var ddl string
	switch dbType {
	case TypePostgres:
		ddl = postgresSchema
	case TypeSQLite:
		ddl = sqliteSchema
	default:
		return fmt.Errorf("unsupported database type %q", dbType)
	}

	_, err := db.Exec(ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    birth_date TEXT,
    gender TEXT CHECK (gender IN ('MALE', 'FEMALE', 'OTHER')),
    profile_image_url TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Verification codes (signup, reset, password)
CREATE TABLE IF NOT EXISTS verification_code (
    email TEXT NOT NULL,
    purpose TEXT NOT NULL,
    code_hash TEXT NOT NULL,
    attempts INTEGER NOT NULL DEFAULT 0,
    expires_at TIMESTAMPTZ NOT NULL,
    verified_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (email, purpose)
);

-- Ideas
CREATE TABLE IF NOT EXISTS idea (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    problem TEXT NOT NULL,
    target_customer TEXT NOT NULL,
    solution TEXT NOT NULL,
    differentiation TEXT NOT NULL,
    category TEXT NOT NULL,
    stage TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_idea_user_id ON idea(user_id);

-- AI analyses (append-only, newest wins)
CREATE TABLE IF NOT EXISTS analysis (
    id BIGSERIAL PRIMARY KEY,
    idea_id BIGINT NOT NULL REFERENCES idea(id) ON DELETE CASCADE,
    market_score INTEGER NOT NULL CHECK (market_score BETWEEN 0 AND 100),
    innovation_score INTEGER NOT NULL CHECK (innovation_score BETWEEN 0 AND 100),
    feasibility_score INTEGER NOT NULL CHECK (feasibility_score BETWEEN 0 AND 100),
    total_score INTEGER NOT NULL CHECK (total_score BETWEEN 0 AND 100),
    strength1 TEXT NOT NULL DEFAULT '',
    strength2 TEXT NOT NULL DEFAULT '',
    improvements1 TEXT NOT NULL DEFAULT '',
    improvements2 TEXT NOT NULL DEFAULT '',
    scorer TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_analysis_idea_id ON analysis(idea_id);

-- Published feeds (one per idea)
CREATE TABLE IF NOT EXISTS feed (
    id BIGSERIAL PRIMARY KEY,
    idea_id BIGINT NOT NULL UNIQUE REFERENCES idea(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Open team positions
CREATE TABLE IF NOT EXISTS feed_position (
    feed_id BIGINT NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    stack TEXT NOT NULL,
    capacity INTEGER NOT NULL CHECK (capacity > 0),
    filled INTEGER NOT NULL DEFAULT 0 CHECK (filled >= 0 AND filled <= capacity),
    PRIMARY KEY (feed_id, stack)
);

-- Likes
CREATE TABLE IF NOT EXISTS feed_like (
    feed_id BIGINT NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (feed_id, user_id)
);

-- Comments
CREATE TABLE IF NOT EXISTS comment (
    id BIGSERIAL PRIMARY KEY,
    feed_id BIGINT NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_comment_feed_id ON comment(feed_id);

-- Team applications
CREATE TABLE IF NOT EXISTS application (
    id BIGSERIAL PRIMARY KEY,
    feed_id BIGINT NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    stack TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    decided_at TIMESTAMPTZ,
    UNIQUE (feed_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_application_user_id ON application(user_id);

-- Saved roadmap answers
CREATE TABLE IF NOT EXISTS roadmap (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    team_size TEXT NOT NULL,
    budget TEXT NOT NULL,
    timeline TEXT NOT NULL,
    priority TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_roadmap_user_id ON roadmap(user_id);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    birth_date TEXT,
    gender TEXT CHECK (gender IN ('MALE', 'FEMALE', 'OTHER')),
    profile_image_url TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS verification_code (
    email TEXT NOT NULL,
    purpose TEXT NOT NULL,
    code_hash TEXT NOT NULL,
    attempts INTEGER NOT NULL DEFAULT 0,
    expires_at TIMESTAMP NOT NULL,
    verified_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (email, purpose)
);

CREATE TABLE IF NOT EXISTS idea (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    problem TEXT NOT NULL,
    target_customer TEXT NOT NULL,
    solution TEXT NOT NULL,
    differentiation TEXT NOT NULL,
    category TEXT NOT NULL,
    stage TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_idea_user_id ON idea(user_id);

CREATE TABLE IF NOT EXISTS analysis (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    idea_id INTEGER NOT NULL REFERENCES idea(id) ON DELETE CASCADE,
    market_score INTEGER NOT NULL CHECK (market_score BETWEEN 0 AND 100),
    innovation_score INTEGER NOT NULL CHECK (innovation_score BETWEEN 0 AND 100),
    feasibility_score INTEGER NOT NULL CHECK (feasibility_score BETWEEN 0 AND 100),
    total_score INTEGER NOT NULL CHECK (total_score BETWEEN 0 AND 100),
    strength1 TEXT NOT NULL DEFAULT '',
    strength2 TEXT NOT NULL DEFAULT '',
    improvements1 TEXT NOT NULL DEFAULT '',
    improvements2 TEXT NOT NULL DEFAULT '',
    scorer TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analysis_idea_id ON analysis(idea_id);

CREATE TABLE IF NOT EXISTS feed (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    idea_id INTEGER NOT NULL UNIQUE REFERENCES idea(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS feed_position (
    feed_id INTEGER NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    stack TEXT NOT NULL,
    capacity INTEGER NOT NULL CHECK (capacity > 0),
    filled INTEGER NOT NULL DEFAULT 0 CHECK (filled >= 0 AND filled <= capacity),
    PRIMARY KEY (feed_id, stack)
);

CREATE TABLE IF NOT EXISTS feed_like (
    feed_id INTEGER NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (feed_id, user_id)
);

CREATE TABLE IF NOT EXISTS comment (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    feed_id INTEGER NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comment_feed_id ON comment(feed_id);

CREATE TABLE IF NOT EXISTS application (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    feed_id INTEGER NOT NULL REFERENCES feed(id) ON DELETE CASCADE,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    stack TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'APPROVED', 'REJECTED')),
    created_at TIMESTAMP NOT NULL,
    decided_at TIMESTAMP,
    UNIQUE (feed_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_application_user_id ON application(user_id);

CREATE TABLE IF NOT EXISTS roadmap (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    team_size TEXT NOT NULL,
    budget TEXT NOT NULL,
    timeline TEXT NOT NULL,
    priority TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_roadmap_user_id ON roadmap(user_id);
`
