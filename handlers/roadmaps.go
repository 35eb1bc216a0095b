// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/middleware"
	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/roadmap"
)

type RoadmapHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRoadmapHandler(db *sql.DB, cfg cliparse.Config) *RoadmapHandler {
	return &RoadmapHandler{db: db, cfg: cfg}
}

// CreateRoadmap handles POST /api/roadmaps
func (h *RoadmapHandler) CreateRoadmap(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.RoadmapCreateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	answers := answersFromRecord(req.TeamSize, req.Budget, req.Timeline, req.Priority)
	if err := answers.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	resp := models.RoadmapResponse{
		TeamSize:  string(answers.TeamSize),
		Budget:    string(answers.Budget),
		Timeline:  string(answers.Period),
		Priority:  string(answers.Priority),
		CreatedAt: now,
	}
	err := h.db.QueryRowContext(r.Context(), `
		INSERT INTO roadmap (user_id, team_size, budget, timeline, priority, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, userID, resp.TeamSize, resp.Budget, resp.Timeline, resp.Priority, now).Scan(&resp.RoadmapID)
	if err != nil {
		slog.Error("failed to insert roadmap", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save roadmap")
		return
	}

	slog.Info("roadmap saved", "roadmap_id", resp.RoadmapID, "case", roadmap.CaseKey(answers))

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// ListRoadmaps handles GET /api/roadmaps
func (h *RoadmapHandler) ListRoadmaps(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, team_size, budget, timeline, priority, created_at
		FROM roadmap WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		slog.Error("failed to query roadmaps", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	roadmaps := []models.RoadmapResponse{}
	for rows.Next() {
		var rm models.RoadmapResponse
		if err := rows.Scan(&rm.RoadmapID, &rm.TeamSize, &rm.Budget, &rm.Timeline, &rm.Priority, &rm.CreatedAt); err != nil {
			slog.Error("failed to scan roadmap", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		roadmaps = append(roadmaps, rm)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate roadmaps", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, roadmaps)
}

// GetRoadmap handles GET /api/roadmaps/{id}
func (h *RoadmapHandler) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.ownedRoadmap(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, rm)
}

// GetRoadmapPlan handles GET /api/roadmaps/{id}/plan
func (h *RoadmapHandler) GetRoadmapPlan(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.ownedRoadmap(w, r)
	if !ok {
		return
	}

	answers := answersFromRecord(rm.TeamSize, rm.Budget, rm.Timeline, rm.Priority)
	if err := answers.Validate(); err != nil {
		slog.Error("stored roadmap is invalid", "roadmap_id", rm.RoadmapID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Stored roadmap is invalid")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, roadmap.Select(answers))
}

// PreviewPlan handles GET /api/roadmaps/plan?teamSize=&budget=&period=&priority=
func (h *RoadmapHandler) PreviewPlan(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	answers := answersFromRecord(q.Get("teamSize"), q.Get("budget"), q.Get("period"), q.Get("priority"))
	if err := answers.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, roadmap.Select(answers))
}

// DeleteRoadmap handles DELETE /api/roadmaps/{id}
func (h *RoadmapHandler) DeleteRoadmap(w http.ResponseWriter, r *http.Request) {
	rm, ok := h.ownedRoadmap(w, r)
	if !ok {
		return
	}

	if _, err := h.db.ExecContext(r.Context(), "DELETE FROM roadmap WHERE id = $1", rm.RoadmapID); err != nil {
		slog.Error("failed to delete roadmap", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete roadmap")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedRoadmap loads the roadmap named by the path, writing 404 or 403
// unless the caller owns it
func (h *RoadmapHandler) ownedRoadmap(w http.ResponseWriter, r *http.Request) (models.RoadmapResponse, bool) {
	var rm models.RoadmapResponse

	userID, ok := currentUser(w, r)
	if !ok {
		return rm, false
	}
	roadmapID, ok := pathID(w, r, "id")
	if !ok {
		return rm, false
	}

	var ownerID int64
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, user_id, team_size, budget, timeline, priority, created_at
		FROM roadmap WHERE id = $1
	`, roadmapID).Scan(&rm.RoadmapID, &ownerID, &rm.TeamSize, &rm.Budget, &rm.Timeline, &rm.Priority, &rm.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Roadmap not found")
		return rm, false
	}
	if err != nil {
		slog.Error("failed to query roadmap", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return rm, false
	}
	if ownerID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Not the owner of this roadmap")
		return rm, false
	}
	return rm, true
}

func answersFromRecord(teamSize, budget, timeline, priority string) roadmap.Answers {
	return roadmap.Answers{
		TeamSize: roadmap.TeamSize(strings.TrimSpace(teamSize)),
		Budget:   roadmap.Budget(strings.TrimSpace(budget)),
		Period:   roadmap.Period(strings.TrimSpace(timeline)),
		Priority: roadmap.Priority(strings.TrimSpace(priority)),
	}
}
