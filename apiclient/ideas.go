// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"net/http"

	"github.com/danielhkuo/onewave/models"
)

// CreateIdea calls POST /api/ideas
func (c *Client) CreateIdea(ctx context.Context, req models.IdeaCreateRequest) (*models.IdeaResponse, error) {
	var idea models.IdeaResponse
	if err := c.do(ctx, http.MethodPost, "/api/ideas", nil, req, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// ListIdeas calls GET /api/ideas
func (c *Client) ListIdeas(ctx context.Context) ([]models.IdeaResponse, error) {
	var ideas []models.IdeaResponse
	if err := c.do(ctx, http.MethodGet, "/api/ideas", nil, nil, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

// GetIdea calls GET /api/ideas/{id}
func (c *Client) GetIdea(ctx context.Context, ideaID int64) (*models.IdeaResponse, error) {
	var idea models.IdeaResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/ideas/%d", ideaID), nil, nil, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// AnalyzeIdea calls POST /api/ideas/{id}/analysis
func (c *Client) AnalyzeIdea(ctx context.Context, ideaID int64) (*models.AnalysisResponse, error) {
	var a models.AnalysisResponse
	if err := c.do(ctx, http.MethodPost, idPath("/api/ideas/%d/analysis", ideaID), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAnalysis calls GET /api/ideas/{id}/analysis
func (c *Client) GetAnalysis(ctx context.Context, ideaID int64) (*models.AnalysisResponse, error) {
	var a models.AnalysisResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/ideas/%d/analysis", ideaID), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
