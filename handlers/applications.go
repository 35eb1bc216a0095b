// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/metrics"
	"github.com/danielhkuo/onewave/middleware"
	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/notify"
)

type ApplicationHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	notifier notify.Notifier
}

func NewApplicationHandler(db *sql.DB, cfg cliparse.Config) *ApplicationHandler {
	return &ApplicationHandler{db: db, cfg: cfg, notifier: notify.FromConfig(cfg)}
}

// Apply handles POST /api/feeds/{id}/applications
func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.ApplyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	stack := strings.TrimSpace(req.Stack)
	if stack == "" || textLen(stack) > maxStackLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stack must be 1-50 characters")
		return
	}

	var (
		ownerID   int64
		ideaTitle string
	)
	err := h.db.QueryRowContext(r.Context(), `
		SELECT i.user_id, i.title FROM feed f JOIN idea i ON i.id = f.idea_id WHERE f.id = $1
	`, feedID).Scan(&ownerID, &ideaTitle)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Feed not found")
		return
	}
	if err != nil {
		slog.Error("failed to query feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID == userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Cannot apply to your own feed")
		return
	}

	stack, err = h.matchPosition(r, feedID, stack)
	if err == errUnknownStack {
		middleware.ErrorResponse(w, http.StatusBadRequest, "stack is not an open position")
		return
	}
	if err != nil {
		slog.Error("failed to query positions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	resp := models.ApplicationResponse{
		FeedID:    feedID,
		Stack:     stack,
		Status:    models.StatusPending,
		CreatedAt: now,
	}
	err = h.db.QueryRowContext(r.Context(), `
		INSERT INTO application (feed_id, user_id, stack, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, feedID, userID, stack, models.StatusPending, now).Scan(&resp.ApplicationID)
	if isUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Already applied to this feed")
		return
	}
	if err != nil {
		slog.Error("failed to insert application", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to apply")
		return
	}

	if err := h.db.QueryRowContext(r.Context(), "SELECT name FROM users WHERE id = $1", userID).Scan(&resp.ApplicantName); err != nil {
		slog.Error("failed to query applicant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("application submitted", "application_id", resp.ApplicationID, "feed_id", feedID)

	// The row is committed; a slow webhook must not hold the response.
	notifyCtx, cancel := context.WithTimeout(r.Context(), notify.DefaultTimeout)
	defer cancel()
	err = h.notifier.ApplicationReceived(notifyCtx, notify.ApplicationEvent{
		FeedID:        feedID,
		ApplicationID: resp.ApplicationID,
		IdeaTitle:     ideaTitle,
		ApplicantName: resp.ApplicantName,
		Stack:         stack,
	})
	if err != nil {
		slog.Warn("failed to send application notification", "application_id", resp.ApplicationID, "error", err)
	}

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ListApplications handles GET /api/feeds/{id}/applications (owner only)
func (h *ApplicationHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if !h.requireOwner(w, r, feedID, userID) {
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT a.id, a.feed_id, u.name, a.stack, a.status, a.created_at
		FROM application a
		JOIN users u ON u.id = a.user_id
		WHERE a.feed_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`, feedID)
	if err != nil {
		slog.Error("failed to query applications", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	apps := []models.ApplicationResponse{}
	for rows.Next() {
		var a models.ApplicationResponse
		if err := rows.Scan(&a.ApplicationID, &a.FeedID, &a.ApplicantName, &a.Stack, &a.Status, &a.CreatedAt); err != nil {
			slog.Error("failed to scan application", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate applications", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, apps)
}

// Approve handles POST /api/feeds/{id}/applications/{appId}/approve
func (h *ApplicationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.StatusApproved)
}

// Reject handles POST /api/feeds/{id}/applications/{appId}/reject
func (h *ApplicationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, models.StatusRejected)
}

// decide moves a PENDING application to next. Approval also takes a seat
// in the matching position; both happen in one transaction.
func (h *ApplicationHandler) decide(w http.ResponseWriter, r *http.Request, next models.ApplicationStatus) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	feedID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	appID, ok := pathID(w, r, "appId")
	if !ok {
		return
	}

	if !h.requireOwner(w, r, feedID, userID) {
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var a models.ApplicationResponse
	err = tx.QueryRowContext(r.Context(), `
		SELECT a.id, a.feed_id, u.name, a.stack, a.status, a.created_at
		FROM application a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1 AND a.feed_id = $2
	`, appID, feedID).Scan(&a.ApplicationID, &a.FeedID, &a.ApplicantName, &a.Stack, &a.Status, &a.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Application not found")
		return
	}
	if err != nil {
		slog.Error("failed to query application", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !a.Status.CanTransitionTo(next) {
		middleware.ErrorResponse(w, http.StatusConflict, "Application is not pending")
		return
	}

	// Guarded so a concurrent decision cannot overwrite this one
	res, err := tx.ExecContext(r.Context(), `
		UPDATE application SET status = $1, decided_at = $2 WHERE id = $3 AND status = $4
	`, next, time.Now(), appID, models.StatusPending)
	if err != nil {
		slog.Error("failed to update application", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Application is not pending")
		return
	}

	if next == models.StatusApproved {
		res, err := tx.ExecContext(r.Context(), `
			UPDATE feed_position SET filled = filled + 1
			WHERE feed_id = $1 AND stack = $2 AND filled < capacity
		`, feedID, a.Stack)
		if err != nil {
			slog.Error("failed to fill position", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			var hasPosition bool
			err := tx.QueryRowContext(r.Context(), `
				SELECT EXISTS (SELECT 1 FROM feed_position WHERE feed_id = $1 AND stack = $2)
			`, feedID, a.Stack).Scan(&hasPosition)
			if err != nil {
				slog.Error("failed to query position", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
				return
			}
			if hasPosition {
				middleware.ErrorResponse(w, http.StatusConflict, "Position is full")
				return
			}
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit decision", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	a.Status = next
	decision := "reject"
	if next == models.StatusApproved {
		decision = "approve"
	}
	metrics.ApplicationDecisions.WithLabelValues(decision).Inc()
	slog.Info("application decided", "application_id", appID, "feed_id", feedID, "status", next)

	middleware.JSONResponse(w, http.StatusOK, a)
}

// requireOwner writes 404 or 403 and returns false unless userID owns the feed
func (h *ApplicationHandler) requireOwner(w http.ResponseWriter, r *http.Request, feedID, userID int64) bool {
	var ownerID int64
	err := h.db.QueryRowContext(r.Context(), `
		SELECT i.user_id FROM feed f JOIN idea i ON i.id = f.idea_id WHERE f.id = $1
	`, feedID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Feed not found")
		return false
	}
	if err != nil {
		slog.Error("failed to query feed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if ownerID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Only the feed owner can manage applications")
		return false
	}
	return true
}

var errUnknownStack = errors.New("stack is not an open position")

// matchPosition returns the canonical stack name for a feed with declared
// positions. Feeds without positions accept any stack.
func (h *ApplicationHandler) matchPosition(r *http.Request, feedID int64, stack string) (string, error) {
	rows, err := h.db.QueryContext(r.Context(), "SELECT stack FROM feed_position WHERE feed_id = $1", feedID)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var stacks []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return "", err
		}
		stacks = append(stacks, s)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	if len(stacks) == 0 {
		return stack, nil
	}
	for _, s := range stacks {
		if strings.EqualFold(s, stack) {
			return s, nil
		}
	}
	return "", errUnknownStack
}
