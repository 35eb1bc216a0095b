// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielhkuo/onewave/apiclient"
	"github.com/danielhkuo/onewave/models"
	"github.com/google/go-cmp/cmp"
)

type fakeAPI struct {
	token    string
	loginErr error
	meErr    error
	meCalls  int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.AuthResponse{AccessToken: f.token, TokenType: models.TokenTypeBearer}, nil
}

func (f *fakeAPI) Me(ctx context.Context) (*models.UserResponse, error) {
	f.meCalls++
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &models.UserResponse{UserID: 1, Email: "ada@example.com", Name: "Ada"}, nil
}

func TestInit_NoStoredToken(t *testing.T) {
	api := &fakeAPI{}
	s := New(&MemoryStore{})

	if err := s.Init(context.Background(), api); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if s.LoggedIn() {
		t.Error("Expected logged out session")
	}
	if api.meCalls != 0 {
		t.Errorf("Expected no profile fetch, got %d", api.meCalls)
	}
}

func TestInit_RestoresToken(t *testing.T) {
	store := &MemoryStore{}
	store.Save("stored-token")
	s := New(store)

	if err := s.Init(context.Background(), &fakeAPI{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !s.LoggedIn() {
		t.Fatal("Expected logged in session")
	}
	if s.Token() != "stored-token" {
		t.Errorf("Expected stored token, got %q", s.Token())
	}
	if s.User().Name != "Ada" {
		t.Errorf("Expected Ada, got %s", s.User().Name)
	}
}

func TestInit_ClearsTokenOnProfileFailure(t *testing.T) {
	store := &MemoryStore{}
	store.Save("expired")
	s := New(store)

	err := s.Init(context.Background(), &fakeAPI{meErr: errors.New("unauthorized")})
	if err == nil {
		t.Fatal("Expected error from Init")
	}
	if s.Token() != "" || s.LoggedIn() {
		t.Error("Expected token to be cleared")
	}
	if stored, _ := store.Load(); stored != "" {
		t.Errorf("Expected stored token cleared, got %q", stored)
	}
}

func TestLogin(t *testing.T) {
	store := &MemoryStore{}
	s := New(store)

	if _, err := s.Login(context.Background(), "a@b.com", "pw"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Expected ErrNotInitialized before Init, got %v", err)
	}

	api := &fakeAPI{token: "fresh"}
	if err := s.Init(context.Background(), api); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	user, err := s.Login(context.Background(), "ada@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("Unexpected user %+v", user)
	}
	if stored, _ := store.Load(); stored != "fresh" {
		t.Errorf("Expected token saved, got %q", stored)
	}

	// A failed profile fetch after login logs out again
	api.meErr = errors.New("boom")
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("Expected Refresh error")
	}
	if s.LoggedIn() || s.Token() != "" {
		t.Error("Expected session cleared after failed refresh")
	}
	if err := s.Refresh(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("Expected ErrNotLoggedIn, got %v", err)
	}
}

func TestLogin_Failure(t *testing.T) {
	store := &MemoryStore{}
	s := New(store)
	s.Init(context.Background(), &fakeAPI{loginErr: errors.New("bad credentials")})

	if _, err := s.Login(context.Background(), "a@b.com", "wrong"); err == nil {
		t.Fatal("Expected login error")
	}
	if s.Token() != "" {
		t.Error("Expected no token after failed login")
	}
}

func TestLogoutAndClose(t *testing.T) {
	store := &MemoryStore{}
	s := New(store)
	s.Init(context.Background(), &fakeAPI{token: "tok"})
	if _, err := s.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	s.Close()
	if s.LoggedIn() || s.User() != nil {
		t.Error("Expected no cached profile after Close")
	}
	if stored, _ := store.Load(); stored != "tok" {
		t.Errorf("Expected stored token kept after Close, got %q", stored)
	}

	s.Init(context.Background(), &fakeAPI{})
	if !s.LoggedIn() {
		t.Fatal("Expected Init to restore the session")
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if s.LoggedIn() {
		t.Error("Expected logged out")
	}
	if stored, _ := store.Load(); stored != "" {
		t.Errorf("Expected stored token cleared, got %q", stored)
	}
}

func TestUserReturnsCopy(t *testing.T) {
	store := &MemoryStore{}
	store.Save("tok")
	s := New(store)
	s.Init(context.Background(), &fakeAPI{})

	u := s.User()
	u.Name = "changed"
	if s.User().Name != "Ada" {
		t.Error("Mutating the returned user changed the session")
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewFileStore(path)

	token, err := store.Load()
	if err != nil || token != "" {
		t.Fatalf("Expected empty load, got %q, %v", token, err)
	}

	if err := store.Save("abc.def"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected 0600, got %o", perm)
	}

	token, _ = store.Load()
	if token != "abc.def" {
		t.Errorf("Expected abc.def, got %q", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Errorf("Second Clear should be a no-op, got %v", err)
	}
}

// The session feeds its token to apiclient through TokenSource
func TestSessionWithAPIClient(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/auth/login":
			json.NewEncoder(w).Encode(models.AuthResponse{AccessToken: "jwt-1", TokenType: models.TokenTypeBearer})
		case "/api/users/me":
			if r.Header.Get("Authorization") != "Bearer jwt-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(models.UserResponse{UserID: 5, Email: "ada@example.com", Name: "Ada"})
		}
	}))
	defer srv.Close()

	s := New(&MemoryStore{})
	client := apiclient.New(srv.URL, apiclient.WithTokenSource(s))
	if err := s.Init(context.Background(), client); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := s.Login(context.Background(), "ada@example.com", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	want := []string{
		"POST /api/auth/login ",
		"GET /api/users/me Bearer jwt-1",
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("Requests mismatch (-want +got):\n%s", diff)
	}
	if s.User().UserID != 5 {
		t.Errorf("Expected user 5, got %d", s.User().UserID)
	}
}
