// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/onewave/models"
)

var (
	ErrNotInitialized = errors.New("session not initialized")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// API is the part of the REST client a session needs.
// *apiclient.Client satisfies it.
type API interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.UserResponse, error)
}

// Session holds the access token and the cached profile of the signed-in
// user. It implements apiclient.TokenSource, so a client built with
// apiclient.WithTokenSource(sess) always sends the current token.
type Session struct {
	mu    sync.Mutex
	store Store
	api   API
	token string
	user  *models.UserResponse
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the current access token, or "" when logged out
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Init binds the session to api and restores a stored token.
// A stored token that no longer yields a profile is cleared and the
// error is returned. With nothing stored, Init succeeds logged out.
func (s *Session) Init(ctx context.Context, api API) error {
	token, err := s.store.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.api = api
	s.token = token
	s.user = nil
	s.mu.Unlock()

	if token == "" {
		return nil
	}
	return s.fetchProfile(ctx, api)
}

// Login exchanges credentials for a token, stores it and loads the profile
func (s *Session) Login(ctx context.Context, email, password string) (*models.UserResponse, error) {
	api, err := s.boundAPI()
	if err != nil {
		return nil, err
	}

	resp, err := api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(resp.AccessToken); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.AccessToken
	s.mu.Unlock()

	if err := s.fetchProfile(ctx, api); err != nil {
		return nil, err
	}
	return s.User(), nil
}

// Refresh reloads the profile. A failure logs the session out.
func (s *Session) Refresh(ctx context.Context) error {
	api, err := s.boundAPI()
	if err != nil {
		return err
	}
	if s.Token() == "" {
		return ErrNotLoggedIn
	}
	return s.fetchProfile(ctx, api)
}

// Logout forgets the token and the profile, including the stored copy
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return s.store.Clear()
}

// User returns a copy of the cached profile, or nil when logged out
func (s *Session) User() *models.UserResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Close releases the in-memory state. The stored token survives for the
// next Init.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = nil
	s.token = ""
	s.user = nil
}

func (s *Session) boundAPI() (API, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.api == nil {
		return nil, ErrNotInitialized
	}
	return s.api, nil
}

// fetchProfile must be called without s.mu held: the API reads the token
// back through Token.
func (s *Session) fetchProfile(ctx context.Context, api API) error {
	user, err := api.Me(ctx)
	if err != nil {
		s.mu.Lock()
		s.token = ""
		s.user = nil
		s.mu.Unlock()
		if clearErr := s.store.Clear(); clearErr != nil {
			return errors.Join(fmt.Errorf("failed to load profile: %w", err), clearErr)
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}
