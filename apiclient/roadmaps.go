// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/roadmap"
)

// CreateRoadmap calls POST /api/roadmaps
func (c *Client) CreateRoadmap(ctx context.Context, a roadmap.Answers) (*models.RoadmapResponse, error) {
	req := models.RoadmapCreateRequest{
		TeamSize: string(a.TeamSize),
		Budget:   string(a.Budget),
		Timeline: string(a.Period),
		Priority: string(a.Priority),
	}
	var rm models.RoadmapResponse
	if err := c.do(ctx, http.MethodPost, "/api/roadmaps", nil, req, &rm); err != nil {
		return nil, err
	}
	return &rm, nil
}

// ListRoadmaps calls GET /api/roadmaps
func (c *Client) ListRoadmaps(ctx context.Context) ([]models.RoadmapResponse, error) {
	var roadmaps []models.RoadmapResponse
	if err := c.do(ctx, http.MethodGet, "/api/roadmaps", nil, nil, &roadmaps); err != nil {
		return nil, err
	}
	return roadmaps, nil
}

// GetRoadmap calls GET /api/roadmaps/{id}
func (c *Client) GetRoadmap(ctx context.Context, roadmapID int64) (*models.RoadmapResponse, error) {
	var rm models.RoadmapResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/roadmaps/%d", roadmapID), nil, nil, &rm); err != nil {
		return nil, err
	}
	return &rm, nil
}

// DeleteRoadmap calls DELETE /api/roadmaps/{id}
func (c *Client) DeleteRoadmap(ctx context.Context, roadmapID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/roadmaps/%d", roadmapID), nil, nil, nil)
}

// RoadmapPlan calls GET /api/roadmaps/{id}/plan
func (c *Client) RoadmapPlan(ctx context.Context, roadmapID int64) (*roadmap.Plan, error) {
	var plan roadmap.Plan
	if err := c.do(ctx, http.MethodGet, idPath("/api/roadmaps/%d/plan", roadmapID), nil, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// PreviewPlan calls GET /api/roadmaps/plan. roadmap.Select gives the same
// answer offline.
func (c *Client) PreviewPlan(ctx context.Context, a roadmap.Answers) (*roadmap.Plan, error) {
	query := url.Values{}
	query.Set("teamSize", string(a.TeamSize))
	query.Set("budget", string(a.Budget))
	query.Set("period", string(a.Period))
	query.Set("priority", string(a.Priority))

	var plan roadmap.Plan
	if err := c.do(ctx, http.MethodGet, "/api/roadmaps/plan", query, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}
