// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/metrics"
	"github.com/danielhkuo/onewave/middleware"
	"github.com/danielhkuo/onewave/models"
)

const (
	maxPositions   = 10
	maxCapacity    = 20
	maxStackLen    = 50
	maxCommentLen  = 1000
	latestScoreSQL = `(SELECT a.total_score FROM analysis a WHERE a.idea_id = i.id ORDER BY a.id DESC LIMIT 1)`
)

// Feed list sort orders
const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortScore   = "score"
)

type FeedHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewFeedHandler(db *sql.DB, cfg cliparse.Config) *FeedHandler {
	return &FeedHandler{db: db, cfg: cfg}
}

// CreateFeed handles POST /api/feeds
func (h *FeedHandler) CreateFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.FeedCreateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.IdeaID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ideaId is required")
		return
	}
	if msg := validatePositions(req.Positions); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	var ownerID int64
	err := h.db.QueryRowContext(r.Context(), "SELECT user_id FROM idea WHERE id = $1", req.IdeaID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea not found")
		return
	}
	if err != nil {
		slog.Error("failed to query idea", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not the owner of this idea")
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var feedID int64
	err = tx.QueryRowContext(r.Context(), `
		INSERT INTO feed (idea_id, created_at) VALUES ($1, $2) RETURNING id
	`, req.IdeaID, time.Now()).Scan(&feedID)
	if isUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Idea is already published")
		return
	}
	if err != nil {
		slog.Error("failed to insert feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish idea")
		return
	}

	for _, p := range req.Positions {
		_, err := tx.ExecContext(r.Context(), `
			INSERT INTO feed_position (feed_id, stack, capacity, filled) VALUES ($1, $2, $3, 0)
		`, feedID, strings.TrimSpace(p.Stack), p.Capacity)
		if err != nil {
			slog.Error("failed to insert position", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish idea")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish idea")
		return
	}

	slog.Info("idea published", "feed_id", feedID, "idea_id", req.IdeaID)

	detail, err := h.loadDetail(r.Context(), feedID, userID)
	if err != nil {
		slog.Error("failed to load feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, detail)
}

// ListFeeds handles GET /api/feeds?category=&sort=
func (h *FeedHandler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	category := models.Category(strings.ToUpper(r.URL.Query().Get("category")))
	if category != "" && !category.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "category is invalid")
		return
	}

	var orderBy string
	switch r.URL.Query().Get("sort") {
	case "", SortRecent:
		orderBy = "f.created_at DESC, f.id DESC"
	case SortPopular:
		orderBy = "like_count DESC, f.id DESC"
	case SortScore:
		orderBy = "COALESCE(" + latestScoreSQL + ", 0) DESC, f.id DESC"
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "sort must be recent, popular or score")
		return
	}

	args := []any{viewerID}
	where := ""
	if category != "" {
		where = "WHERE i.category = $2"
		args = append(args, category)
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT f.id, i.title, i.problem, i.category, u.name,
			`+latestScoreSQL+` AS total_score,
			(SELECT COUNT(*) FROM feed_like l WHERE l.feed_id = f.id) AS like_count,
			(SELECT COUNT(*) FROM comment c WHERE c.feed_id = f.id) AS comment_count,
			EXISTS (SELECT 1 FROM feed_like l WHERE l.feed_id = f.id AND l.user_id = $1) AS liked_by_me,
			f.created_at
		FROM feed f
		JOIN idea i ON i.id = f.idea_id
		JOIN users u ON u.id = i.user_id
		`+where+`
		ORDER BY `+orderBy, args...)
	if err != nil {
		slog.Error("failed to query feeds", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	items := []models.FeedListItem{}
	for rows.Next() {
		var (
			item  models.FeedListItem
			score sql.NullInt64
		)
		if err := rows.Scan(&item.FeedID, &item.Title, &item.Problem, &item.Category, &item.AuthorName,
			&score, &item.LikeCount, &item.CommentCount, &item.LikedByMe, &item.CreatedAt); err != nil {
			slog.Error("failed to scan feed", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		item.TotalScore = intPtr(score)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate feeds", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

// GetFeed handles GET /api/feeds/{id}
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	viewerID, _ := middleware.UserIDFromContext(r.Context())

	detail, err := h.loadDetail(r.Context(), feedID, viewerID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Feed not found")
		return
	}
	if err != nil {
		slog.Error("failed to load feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// Like handles POST /api/feeds/{id}/likes. Liking twice is a no-op.
func (h *FeedHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if !h.feedExists(w, r, feedID) {
		return
	}

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO feed_like (feed_id, user_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (feed_id, user_id) DO NOTHING
	`, feedID, userID, time.Now())
	if err != nil {
		slog.Error("failed to insert like", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to like feed")
		return
	}

	metrics.LikesTotal.WithLabelValues("like").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// Unlike handles DELETE /api/feeds/{id}/likes. Unliking twice is a no-op.
func (h *FeedHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if !h.feedExists(w, r, feedID) {
		return
	}

	_, err := h.db.ExecContext(r.Context(), "DELETE FROM feed_like WHERE feed_id = $1 AND user_id = $2", feedID, userID)
	if err != nil {
		slog.Error("failed to delete like", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to unlike feed")
		return
	}

	metrics.LikesTotal.WithLabelValues("unlike").Inc()
	w.WriteHeader(http.StatusNoContent)
}

// ListComments handles GET /api/feeds/{id}/comments (newest first)
func (h *FeedHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if !h.feedExists(w, r, feedID) {
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT c.id, c.feed_id, u.name, c.content, c.created_at
		FROM comment c
		JOIN users u ON u.id = c.user_id
		WHERE c.feed_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`, feedID)
	if err != nil {
		slog.Error("failed to query comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	comments := []models.CommentResponse{}
	for rows.Next() {
		var c models.CommentResponse
		if err := rows.Scan(&c.CommentID, &c.FeedID, &c.AuthorName, &c.Content, &c.CreatedAt); err != nil {
			slog.Error("failed to scan comment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate comments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, comments)
}

// CreateComment handles POST /api/feeds/{id}/comments
func (h *FeedHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CommentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" || textLen(content) > maxCommentLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content must be 1-1000 characters")
		return
	}

	if !h.feedExists(w, r, feedID) {
		return
	}

	now := time.Now()
	resp := models.CommentResponse{FeedID: feedID, Content: content, CreatedAt: now}
	err := h.db.QueryRowContext(r.Context(), `
		INSERT INTO comment (feed_id, user_id, content, created_at) VALUES ($1, $2, $3, $4)
		RETURNING id
	`, feedID, userID, content, now).Scan(&resp.CommentID)
	if err != nil {
		slog.Error("failed to insert comment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	if err := h.db.QueryRowContext(r.Context(), "SELECT name FROM users WHERE id = $1", userID).Scan(&resp.AuthorName); err != nil {
		slog.Error("failed to query comment author", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// feedExists writes 404 or 500 and returns false when the feed is unavailable
func (h *FeedHandler) feedExists(w http.ResponseWriter, r *http.Request, feedID int64) bool {
	var exists bool
	err := h.db.QueryRowContext(r.Context(), "SELECT EXISTS (SELECT 1 FROM feed WHERE id = $1)", feedID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Feed not found")
		return false
	}
	return true
}

// loadDetail assembles the detail view for viewerID (0 for anonymous).
// Returns sql.ErrNoRows when the feed does not exist.
func (h *FeedHandler) loadDetail(ctx context.Context, feedID, viewerID int64) (models.FeedDetailResponse, error) {
	var (
		d                                        models.FeedDetailResponse
		ownerID                                  int64
		ownerAvatar                              sql.NullString
		market, innovation, feasible, total      sql.NullInt64
		strength1, strength2, improve1, improve2 sql.NullString
	)
	err := h.db.QueryRowContext(ctx, `
		SELECT f.id, i.id, i.title, i.problem, i.target_customer, i.solution, i.differentiation,
			i.category, i.stage, u.id, u.name, u.profile_image_url,
			a.market_score, a.innovation_score, a.feasibility_score, a.total_score,
			a.strength1, a.strength2, a.improvements1, a.improvements2,
			(SELECT COUNT(*) FROM feed_like l WHERE l.feed_id = f.id),
			(SELECT COUNT(*) FROM comment c WHERE c.feed_id = f.id),
			EXISTS (SELECT 1 FROM feed_like l WHERE l.feed_id = f.id AND l.user_id = $2),
			f.created_at
		FROM feed f
		JOIN idea i ON i.id = f.idea_id
		JOIN users u ON u.id = i.user_id
		LEFT JOIN analysis a ON a.id = (SELECT MAX(a2.id) FROM analysis a2 WHERE a2.idea_id = i.id)
		WHERE f.id = $1
	`, feedID, viewerID).Scan(&d.FeedID, &d.IdeaID, &d.Title, &d.Problem, &d.TargetCustomer, &d.Solution,
		&d.Differentiation, &d.Category, &d.Stage, &ownerID, &d.AuthorName, &ownerAvatar,
		&market, &innovation, &feasible, &total,
		&strength1, &strength2, &improve1, &improve2,
		&d.LikeCount, &d.CommentCount, &d.LikedByMe, &d.CreatedAt)
	if err != nil {
		return d, err
	}

	d.MarketScore = intPtr(market)
	d.InnovationScore = intPtr(innovation)
	d.FeasibilityScore = intPtr(feasible)
	d.TotalScore = intPtr(total)
	d.Strength1, d.Strength2 = strength1.String, strength2.String
	d.Improvements1, d.Improvements2 = improve1.String, improve2.String
	d.IsOwner = viewerID != 0 && viewerID == ownerID

	d.Members = []models.FeedMember{{
		UserID:          ownerID,
		Name:            d.AuthorName,
		Role:            models.RoleOwner,
		ProfileImageURL: ownerAvatar.String,
	}}
	members, err := h.loadMembers(ctx, feedID)
	if err != nil {
		return d, err
	}
	d.Members = append(d.Members, members...)

	d.Positions, err = h.loadPositions(ctx, feedID)
	if err != nil {
		return d, err
	}

	return d, nil
}

func (h *FeedHandler) loadMembers(ctx context.Context, feedID int64) ([]models.FeedMember, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT u.id, u.name, a.stack, u.profile_image_url
		FROM application a
		JOIN users u ON u.id = a.user_id
		WHERE a.feed_id = $1 AND a.status = $2
		ORDER BY a.decided_at, a.id
	`, feedID, models.StatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.FeedMember
	for rows.Next() {
		var (
			m      models.FeedMember
			avatar sql.NullString
		)
		if err := rows.Scan(&m.UserID, &m.Name, &m.Stack, &avatar); err != nil {
			return nil, err
		}
		m.Role = models.RoleMember
		m.ProfileImageURL = avatar.String
		members = append(members, m)
	}
	return members, rows.Err()
}

func (h *FeedHandler) loadPositions(ctx context.Context, feedID int64) ([]models.FeedPosition, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT stack, capacity, filled FROM feed_position WHERE feed_id = $1 ORDER BY stack
	`, feedID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := []models.FeedPosition{}
	for rows.Next() {
		var p models.FeedPosition
		if err := rows.Scan(&p.Stack, &p.Capacity, &p.Filled); err != nil {
			return nil, err
		}
		p.Remaining = p.Capacity - p.Filled
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// validatePositions returns a message for the first invalid position, or ""
func validatePositions(positions []models.PositionRequest) string {
	if len(positions) > maxPositions {
		return "at most 10 positions are allowed"
	}
	seen := make(map[string]bool, len(positions))
	for _, p := range positions {
		stack := strings.TrimSpace(p.Stack)
		if stack == "" || textLen(stack) > maxStackLen {
			return "position stack must be 1-50 characters"
		}
		if p.Capacity < 1 || p.Capacity > maxCapacity {
			return "position capacity must be 1-20"
		}
		key := strings.ToLower(stack)
		if seen[key] {
			return "duplicate position stack: " + stack
		}
		seen[key] = true
	}
	return ""
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
