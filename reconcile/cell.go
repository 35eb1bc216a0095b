// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrInFlight is returned by Update while a previous commit is still running
var ErrInFlight = errors.New("update already in flight")

// Cell holds optimistic client state in front of a remote mutation.
// At most one commit runs at a time, and a failed commit restores the
// state captured just before it.
type Cell[S any] struct {
	mu        sync.Mutex
	state     S
	inFlight  bool
	detached  bool
	listeners []func(S)
}

func NewCell[S any](initial S) *Cell[S] {
	return &Cell[S]{state: initial}
}

func (c *Cell[S]) Get() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InFlight reports whether a commit is running
func (c *Cell[S]) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// OnChange registers fn to be called with every new state.
// Listeners run outside the cell's lock, in registration order.
func (c *Cell[S]) OnChange(fn func(S)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// Update applies next to the current state, notifies listeners and runs
// commit. If commit fails the previous state is restored and listeners
// are notified again.
func (c *Cell[S]) Update(ctx context.Context, next func(S) S, commit func(ctx context.Context, prev, next S) error) error {
	c.mu.Lock()
	if c.detached {
		c.mu.Unlock()
		return nil
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrInFlight
	}
	prev := c.state
	optimistic := next(prev)
	c.state = optimistic
	c.inFlight = true
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, optimistic)

	err := commit(ctx, prev, optimistic)

	c.mu.Lock()
	c.inFlight = false
	if c.detached {
		c.mu.Unlock()
		return err
	}
	if err == nil {
		c.mu.Unlock()
		return nil
	}
	c.state = prev
	listeners = c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, prev)
	return fmt.Errorf("rolled back: %w", err)
}

// Sync replaces the state with a value fetched from the server.
// It is ignored while a commit is running or after Detach.
func (c *Cell[S]) Sync(state S) bool {
	c.mu.Lock()
	if c.detached || c.inFlight {
		c.mu.Unlock()
		return false
	}
	c.state = state
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, state)
	return true
}

// Detach stops all further state changes and notifications, including
// those from a commit that is still running.
func (c *Cell[S]) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detached = true
	c.listeners = nil
}

func (c *Cell[S]) snapshotListeners() []func(S) {
	out := make([]func(S), len(c.listeners))
	copy(out, c.listeners)
	return out
}

func notify[S any](listeners []func(S), state S) {
	for _, fn := range listeners {
		fn(state)
	}
}
