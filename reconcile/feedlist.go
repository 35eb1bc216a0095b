// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reconcile

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/danielhkuo/onewave/models"
)

// Sort orders for View
const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortScore   = "score"
)

// ValidSort reports whether s is a known sort order. Empty means recent.
func ValidSort(s string) bool {
	switch s {
	case "", SortRecent, SortPopular, SortScore:
		return true
	}
	return false
}

// Update is a child vote's state merged back into the list
type Update struct {
	ID        int64
	LikeCount int
	LikedByMe bool
}

// Query selects and orders the visible feed. Zero values match everything
// and sort by recency.
type Query struct {
	Category models.Category
	Search   string
	Sort     string
}

// FeedList is the client copy of GET /api/feeds plus one Vote per item.
// Votes write their optimistic state back into the list, so View always
// reflects the latest clicks.
type FeedList struct {
	mu    sync.Mutex
	items []models.FeedListItem
	votes map[string]*Vote
	liker Liker
}

func NewFeedList(items []models.FeedListItem, liker Liker) *FeedList {
	l := &FeedList{liker: liker, votes: make(map[string]*Vote)}
	l.items = cloneItems(items)
	return l
}

// Replace swaps in a freshly fetched list. Existing votes are detached
// and later results from them are dropped.
func (l *FeedList) Replace(items []models.FeedListItem) {
	l.mu.Lock()
	old := l.votes
	l.votes = make(map[string]*Vote)
	l.items = cloneItems(items)
	l.mu.Unlock()

	for _, v := range old {
		v.Detach()
	}
}

// Items returns a copy of the list in server order
func (l *FeedList) Items() []models.FeedListItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneItems(l.items)
}

// Apply merges u into the item with the same id. It returns false when no
// such item is listed.
func (l *FeedList) Apply(u Update) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.items {
		if l.items[i].FeedID == u.ID {
			l.items[i].LikeCount = u.LikeCount
			l.items[i].LikedByMe = u.LikedByMe
			return true
		}
	}
	return false
}

// Vote returns the vote for key, creating it on first use
func (l *FeedList) Vote(key string) *Vote {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.votes[key]; ok {
		return v
	}

	var initial State
	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		for _, item := range l.items {
			if item.FeedID == id {
				initial = State{LikeCount: item.LikeCount, LikedByMe: item.LikedByMe}
				break
			}
		}
	}

	v := NewVote(key, initial, l.liker)
	if v.Valid() {
		id := v.ID()
		v.OnChange(func(s State) {
			l.Apply(Update{ID: id, LikeCount: s.LikeCount, LikedByMe: s.LikedByMe})
		})
	}
	l.votes[key] = v
	return v
}

// View filters and sorts the current snapshot. Ties keep newer feed ids
// first.
func (l *FeedList) View(q Query) []models.FeedListItem {
	l.mu.Lock()
	items := cloneItems(l.items)
	l.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := items[:0]
	for _, item := range items {
		if q.Category != "" && item.Category != q.Category {
			continue
		}
		if search != "" && !matches(item, search) {
			continue
		}
		out = append(out, item)
	}

	var less func(a, b models.FeedListItem) bool
	switch q.Sort {
	case SortPopular:
		less = func(a, b models.FeedListItem) bool {
			if a.LikeCount != b.LikeCount {
				return a.LikeCount > b.LikeCount
			}
			return a.FeedID > b.FeedID
		}
	case SortScore:
		less = func(a, b models.FeedListItem) bool {
			sa, sb := scoreOf(a), scoreOf(b)
			if sa != sb {
				return sa > sb
			}
			return a.FeedID > b.FeedID
		}
	default:
		less = func(a, b models.FeedListItem) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.FeedID > b.FeedID
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func matches(item models.FeedListItem, search string) bool {
	for _, field := range []string{item.Title, item.Problem, item.AuthorName, item.Category.Label()} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func scoreOf(item models.FeedListItem) int {
	if item.TotalScore == nil {
		return 0
	}
	return *item.TotalScore
}

func cloneItems(items []models.FeedListItem) []models.FeedListItem {
	out := make([]models.FeedListItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.TotalScore != nil {
			score := *item.TotalScore
			out[i].TotalScore = &score
		}
	}
	return out
}
