// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/onewave/auth"
	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/db"
	"github.com/danielhkuo/onewave/middleware"
	"github.com/danielhkuo/onewave/models"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the password of every user created by CreateTestUser
const TestPassword = "password123"

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir() and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := "file:" + filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  "file:test.db",
		DatabaseType: db.TypeSQLite,
		JWTSecret:    "test-jwt-secret",
		TokenTTL:     time.Hour,
		PasswordCost: bcrypt.MinCost,
		LogLevel:     "error",
	}
}

// CreateTestUser inserts a user with TestPassword and returns its ID and a
// valid access token
func CreateTestUser(t *testing.T, conn *sql.DB, cfg cliparse.Config, email, name string) (int64, string) {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword, cfg.PasswordCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	var userID int64
	err = conn.QueryRow(`
		INSERT INTO users (email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, email, hash, name, time.Now()).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := auth.IssueToken(cfg.JWTSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	return userID, token
}

// CreateTestIdea inserts an idea owned by userID and returns its ID
func CreateTestIdea(t *testing.T, conn *sql.DB, userID int64, title string) int64 {
	t.Helper()

	var ideaID int64
	err := conn.QueryRow(`
		INSERT INTO idea (user_id, title, problem, target_customer, solution, differentiation, category, stage, created_at)
		VALUES ($1, $2, 'Finding a problem worth solving', 'Early founders', 'A guided validation app', 'AI scoring with community feedback', $3, $4, $5)
		RETURNING id
	`, userID, title, models.CategorySaaS, models.StageIdea, time.Now()).Scan(&ideaID)
	if err != nil {
		t.Fatalf("Failed to create test idea: %v", err)
	}

	return ideaID
}

// CreateTestAnalysis stores an analysis with the given total for an idea
func CreateTestAnalysis(t *testing.T, conn *sql.DB, ideaID int64, total int) int64 {
	t.Helper()

	now := time.Now()
	var analysisID int64
	err := conn.QueryRow(`
		INSERT INTO analysis (idea_id, market_score, innovation_score, feasibility_score, total_score, scorer, created_at, updated_at)
		VALUES ($1, $2, $2, $2, $2, 'test', $3, $3)
		RETURNING id
	`, ideaID, total, now).Scan(&analysisID)
	if err != nil {
		t.Fatalf("Failed to create test analysis: %v", err)
	}

	return analysisID
}

// CreateTestFeed publishes an idea with the given positions (stack -> capacity)
// and returns the feed ID
func CreateTestFeed(t *testing.T, conn *sql.DB, ideaID int64, positions map[string]int) int64 {
	t.Helper()

	var feedID int64
	err := conn.QueryRow(`
		INSERT INTO feed (idea_id, created_at) VALUES ($1, $2) RETURNING id
	`, ideaID, time.Now()).Scan(&feedID)
	if err != nil {
		t.Fatalf("Failed to create test feed: %v", err)
	}

	for stack, capacity := range positions {
		_, err := conn.Exec(`
			INSERT INTO feed_position (feed_id, stack, capacity, filled) VALUES ($1, $2, $3, 0)
		`, feedID, stack, capacity)
		if err != nil {
			t.Fatalf("Failed to create test position: %v", err)
		}
	}

	return feedID
}

// CreateTestApplication inserts a PENDING application and returns its ID
func CreateTestApplication(t *testing.T, conn *sql.DB, feedID, userID int64, stack string) int64 {
	t.Helper()

	var appID int64
	err := conn.QueryRow(`
		INSERT INTO application (feed_id, user_id, stack, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, feedID, userID, stack, models.StatusPending, time.Now()).Scan(&appID)
	if err != nil {
		t.Fatalf("Failed to create test application: %v", err)
	}

	return appID
}

// CreateVerifiedEmail marks an email as verified for signup
func CreateVerifiedEmail(t *testing.T, conn *sql.DB, cfg cliparse.Config, email string) {
	t.Helper()

	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO verification_code (email, purpose, code_hash, attempts, expires_at, verified_at, created_at)
		VALUES ($1, 'signup', $2, 0, $3, $4, $4)
	`, email, auth.HashCode(email, "signup", "000000", cfg.JWTSecret), now.Add(10*time.Minute), now)
	if err != nil {
		t.Fatalf("Failed to create verified email: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AsUser attaches an authenticated user ID to the request, as RequireAuth would
func AsUser(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// BearerHeader returns an Authorization header map for MakeRequest
func BearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
