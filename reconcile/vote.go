// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"context"
	"strconv"
)

// State is one viewer's view of a feed item's likes
type State struct {
	LikeCount int
	LikedByMe bool
}

// Liker sends like mutations to the server. *apiclient.Client satisfies it.
type Liker interface {
	Like(ctx context.Context, feedID int64) error
	Unlike(ctx context.Context, feedID int64) error
}

// Vote is the optimistic like button for one feed item
type Vote struct {
	id    int64
	valid bool
	cell  *Cell[State]
	liker Liker
}

// NewVote parses id as a feed id. When it is not numeric every operation
// on the returned Vote does nothing.
func NewVote(id string, initial State, liker Liker) *Vote {
	if initial.LikeCount < 0 {
		initial.LikeCount = 0
	}
	v := &Vote{cell: NewCell(initial), liker: liker}
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		v.id = n
		v.valid = true
	}
	return v
}

func (v *Vote) ID() int64 {
	return v.id
}

func (v *Vote) Valid() bool {
	return v.valid
}

func (v *Vote) State() State {
	return v.cell.Get()
}

func (v *Vote) OnChange(fn func(State)) {
	v.cell.OnChange(fn)
}

func (v *Vote) InFlight() bool {
	return v.cell.InFlight()
}

// ToggleUpvote likes the item, or unlikes it if the viewer already did
func (v *Vote) ToggleUpvote(ctx context.Context) error {
	if !v.valid {
		return nil
	}
	return v.cell.Update(ctx, func(s State) State {
		if s.LikedByMe {
			return unliked(s)
		}
		return State{LikeCount: s.LikeCount + 1, LikedByMe: true}
	}, v.commit)
}

// CanDownvote reports whether ToggleDownvote would do anything
func (v *Vote) CanDownvote() bool {
	if !v.valid {
		return false
	}
	s := v.cell.Get()
	return s.LikedByMe && s.LikeCount > 0
}

// ToggleDownvote removes the viewer's like. There is no separate dislike.
func (v *Vote) ToggleDownvote(ctx context.Context) error {
	if !v.CanDownvote() {
		return nil
	}
	return v.cell.Update(ctx, func(s State) State {
		if !s.LikedByMe || s.LikeCount == 0 {
			return s
		}
		return unliked(s)
	}, v.commit)
}

// Sync replaces the state with server data unless a request is running
func (v *Vote) Sync(s State) bool {
	if s.LikeCount < 0 {
		s.LikeCount = 0
	}
	return v.cell.Sync(s)
}

func (v *Vote) Detach() {
	v.cell.Detach()
}

func (v *Vote) commit(ctx context.Context, prev, next State) error {
	switch {
	case next.LikedByMe && !prev.LikedByMe:
		return v.liker.Like(ctx, v.id)
	case !next.LikedByMe && prev.LikedByMe:
		return v.liker.Unlike(ctx, v.id)
	}
	return nil
}

func unliked(s State) State {
	count := s.LikeCount - 1
	if count < 0 {
		count = 0
	}
	return State{LikeCount: count, LikedByMe: false}
}
