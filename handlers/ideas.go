// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/onewave/analysis"
	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/metrics"
	"github.com/danielhkuo/onewave/middleware"
	"github.com/danielhkuo/onewave/models"
)

const (
	maxTitleLen = 100
	maxFieldLen = 2000
)

type IdeaHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	scorer analysis.Scorer
}

func NewIdeaHandler(db *sql.DB, cfg cliparse.Config) *IdeaHandler {
	return &IdeaHandler{db: db, cfg: cfg, scorer: analysis.FromConfig(cfg)}
}

// CreateIdea handles POST /api/ideas
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.IdeaCreateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateIdea(&req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	var ideaID int64
	err := h.db.QueryRowContext(r.Context(), `
		INSERT INTO idea (user_id, title, problem, target_customer, solution, differentiation, category, stage, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, userID, req.Title, req.Problem, req.TargetCustomer, req.Solution, req.Differentiation,
		req.Category, req.Stage, now).Scan(&ideaID)
	if err != nil {
		slog.Error("failed to insert idea", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create idea")
		return
	}

	slog.Info("idea created", "idea_id", ideaID, "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.IdeaResponse{
		IdeaID:          ideaID,
		Title:           req.Title,
		Problem:         req.Problem,
		TargetCustomer:  req.TargetCustomer,
		Solution:        req.Solution,
		Differentiation: req.Differentiation,
		Category:        req.Category,
		Stage:           req.Stage,
		CreatedAt:       now,
	})
}

// ListIdeas handles GET /api/ideas (the caller's own ideas, newest first)
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, title, problem, target_customer, solution, differentiation, category, stage, created_at
		FROM idea WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		slog.Error("failed to query ideas", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ideas := []models.IdeaResponse{}
	for rows.Next() {
		var idea models.IdeaResponse
		if err := rows.Scan(&idea.IdeaID, &idea.Title, &idea.Problem, &idea.TargetCustomer, &idea.Solution,
			&idea.Differentiation, &idea.Category, &idea.Stage, &idea.CreatedAt); err != nil {
			slog.Error("failed to scan idea", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ideas = append(ideas, idea)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate ideas", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ideas)
}

// GetIdea handles GET /api/ideas/{id}
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	ideaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	idea, ownerID, err := h.loadIdea(r, ideaID)
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

	middleware.JSONResponse(w, http.StatusOK, idea)
}

// AnalyzeIdea handles POST /api/ideas/{id}/analysis.
// Every call stores a new analysis; the newest is current.
func (h *IdeaHandler) AnalyzeIdea(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	ideaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	idea, ownerID, err := h.loadIdea(r, ideaID)
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

	start := time.Now()
	result, err := h.scorer.Score(r.Context(), analysis.Input{
		Title:           idea.Title,
		Problem:         idea.Problem,
		TargetCustomer:  idea.TargetCustomer,
		Solution:        idea.Solution,
		Differentiation: idea.Differentiation,
		Category:        idea.Category,
		Stage:           idea.Stage,
	})
	metrics.ObserveAnalysis(h.scorer.Name(), err, time.Since(start))
	if err != nil {
		slog.Error("failed to analyze idea", "idea_id", ideaID, "scorer", h.scorer.Name(), "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Analysis service unavailable")
		return
	}

	now := time.Now()
	resp := models.AnalysisResponse{
		IdeaID:           ideaID,
		MarketScore:      result.Market,
		InnovationScore:  result.Innovation,
		FeasibilityScore: result.Feasibility,
		TotalScore:       result.Total,
		Strength1:        result.Strength1,
		Strength2:        result.Strength2,
		Improvements1:    result.Improvement1,
		Improvements2:    result.Improvement2,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = h.db.QueryRowContext(r.Context(), `
		INSERT INTO analysis (idea_id, market_score, innovation_score, feasibility_score, total_score,
			strength1, strength2, improvements1, improvements2, scorer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`, ideaID, resp.MarketScore, resp.InnovationScore, resp.FeasibilityScore, resp.TotalScore,
		resp.Strength1, resp.Strength2, resp.Improvements1, resp.Improvements2, h.scorer.Name(), now).Scan(&resp.AnalysisID)
	if err != nil {
		slog.Error("failed to insert analysis", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save analysis")
		return
	}

	slog.Info("idea analyzed", "idea_id", ideaID, "total_score", resp.TotalScore, "scorer", h.scorer.Name())

	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetAnalysis handles GET /api/ideas/{id}/analysis
func (h *IdeaHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	ideaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var ownerID int64
	err := h.db.QueryRowContext(r.Context(), "SELECT user_id FROM idea WHERE id = $1", ideaID).Scan(&ownerID)
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

	var a models.AnalysisResponse
	err = h.db.QueryRowContext(r.Context(), `
		SELECT id, idea_id, market_score, innovation_score, feasibility_score, total_score,
			strength1, strength2, improvements1, improvements2, created_at, updated_at
		FROM analysis WHERE idea_id = $1
		ORDER BY id DESC LIMIT 1
	`, ideaID).Scan(&a.AnalysisID, &a.IdeaID, &a.MarketScore, &a.InnovationScore, &a.FeasibilityScore, &a.TotalScore,
		&a.Strength1, &a.Strength2, &a.Improvements1, &a.Improvements2, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Idea has not been analyzed")
		return
	}
	if err != nil {
		slog.Error("failed to query analysis", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, a)
}

func (h *IdeaHandler) loadIdea(r *http.Request, ideaID int64) (models.IdeaResponse, int64, error) {
	var (
		idea    models.IdeaResponse
		ownerID int64
	)
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, user_id, title, problem, target_customer, solution, differentiation, category, stage, created_at
		FROM idea WHERE id = $1
	`, ideaID).Scan(&idea.IdeaID, &ownerID, &idea.Title, &idea.Problem, &idea.TargetCustomer, &idea.Solution,
		&idea.Differentiation, &idea.Category, &idea.Stage, &idea.CreatedAt)
	return idea, ownerID, err
}

// validateIdea trims the request in place and returns a message for the
// first invalid field, or ""
func validateIdea(req *models.IdeaCreateRequest) string {
	req.Title = strings.TrimSpace(req.Title)
	req.Problem = strings.TrimSpace(req.Problem)
	req.TargetCustomer = strings.TrimSpace(req.TargetCustomer)
	req.Solution = strings.TrimSpace(req.Solution)
	req.Differentiation = strings.TrimSpace(req.Differentiation)

	if req.Title == "" || textLen(req.Title) > maxTitleLen {
		return "title must be 1-100 characters"
	}
	fields := []struct{ name, value string }{
		{"problem", req.Problem},
		{"targetCustomer", req.TargetCustomer},
		{"solution", req.Solution},
		{"differentiation", req.Differentiation},
	}
	for _, f := range fields {
		if f.value == "" || textLen(f.value) > maxFieldLen {
			return f.name + " must be 1-2000 characters"
		}
	}
	if !req.Category.Valid() {
		return "category is invalid"
	}
	if !req.Stage.Valid() {
		return "stage is invalid"
	}
	return ""
}
