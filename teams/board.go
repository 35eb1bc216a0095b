// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package teams

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/danielhkuo/onewave/models"
)

var (
	ErrUnknownApplication = errors.New("unknown application")
	ErrProcessing         = errors.New("application is already being processed")
	ErrNotPending         = errors.New("application is not pending")
	ErrClosed             = errors.New("board closed")
)

// Decider lists and decides a feed's applications. *apiclient.Client
// satisfies it.
type Decider interface {
	ListApplications(ctx context.Context, feedID int64) ([]models.ApplicationResponse, error)
	ApproveApplication(ctx context.Context, feedID, appID int64) (*models.ApplicationResponse, error)
	RejectApplication(ctx context.Context, feedID, appID int64) (*models.ApplicationResponse, error)
}

// Board is the owner's view of applications to one feed.
// An application being decided sits in the processing set until the
// server answers, and no second decision is accepted for it meanwhile.
type Board struct {
	mu         sync.Mutex
	feedID     int64
	api        Decider
	apps       []models.ApplicationResponse
	processing map[int64]bool
	closed     bool
}

func NewBoard(feedID int64, api Decider) *Board {
	return &Board{
		feedID:     feedID,
		api:        api,
		processing: make(map[int64]bool),
	}
}

func (b *Board) FeedID() int64 {
	return b.feedID
}

// Load replaces the list with the server's
func (b *Board) Load(ctx context.Context) error {
	apps, err := b.api.ListApplications(ctx, b.feedID)
	if err != nil {
		return fmt.Errorf("failed to load applications: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	b.apps = append([]models.ApplicationResponse(nil), apps...)
	return nil
}

// Applications returns a copy of the current list
func (b *Board) Applications() []models.ApplicationResponse {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.ApplicationResponse(nil), b.apps...)
}

// Processing reports whether a decision for appID is waiting on the server
func (b *Board) Processing(appID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.processing[appID]
}

// Approve accepts a pending application
func (b *Board) Approve(ctx context.Context, appID int64) (*models.ApplicationResponse, error) {
	return b.decide(ctx, appID, models.StatusApproved)
}

// Reject declines a pending application
func (b *Board) Reject(ctx context.Context, appID int64) (*models.ApplicationResponse, error) {
	return b.decide(ctx, appID, models.StatusRejected)
}

// Close makes the board ignore responses that arrive afterwards
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

func (b *Board) decide(ctx context.Context, appID int64, next models.ApplicationStatus) (*models.ApplicationResponse, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	i := b.indexOf(appID)
	if i < 0 {
		b.mu.Unlock()
		return nil, ErrUnknownApplication
	}
	if b.processing[appID] {
		b.mu.Unlock()
		return nil, ErrProcessing
	}
	if !b.apps[i].Status.CanTransitionTo(next) {
		b.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotPending, b.apps[i].Status)
	}
	b.processing[appID] = true
	b.mu.Unlock()

	var resp *models.ApplicationResponse
	var err error
	if next == models.StatusApproved {
		resp, err = b.api.ApproveApplication(ctx, b.feedID, appID)
	} else {
		resp, err = b.api.RejectApplication(ctx, b.feedID, appID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.processing, appID)
	if err != nil {
		return nil, err
	}

	// A 204 decodes to a zero response; the requested status is authoritative.
	i = b.indexOf(appID)
	var decided models.ApplicationResponse
	switch {
	case resp != nil && resp.ApplicationID != 0:
		decided = *resp
	case i >= 0:
		decided = b.apps[i]
	default:
		decided = models.ApplicationResponse{ApplicationID: appID, FeedID: b.feedID}
	}
	decided.Status = next

	if !b.closed && i >= 0 {
		b.apps[i].Status = next
	}
	return &decided, nil
}

func (b *Board) indexOf(appID int64) int {
	for i, app := range b.apps {
		if app.ApplicationID == appID {
			return i
		}
	}
	return -1
}
