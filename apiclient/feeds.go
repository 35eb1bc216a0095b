// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/danielhkuo/onewave/models"
)

// ListFeedsOptions filters and orders GET /api/feeds. Zero values are omitted.
type ListFeedsOptions struct {
	Category models.Category
	Sort     string // recent, popular or score
}

// CreateFeed calls POST /api/feeds
func (c *Client) CreateFeed(ctx context.Context, req models.FeedCreateRequest) (*models.FeedDetailResponse, error) {
	var detail models.FeedDetailResponse
	if err := c.do(ctx, http.MethodPost, "/api/feeds", nil, req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListFeeds calls GET /api/feeds
func (c *Client) ListFeeds(ctx context.Context, opts ListFeedsOptions) ([]models.FeedListItem, error) {
	query := url.Values{}
	if opts.Category != "" {
		query.Set("category", string(opts.Category))
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}

	var items []models.FeedListItem
	if err := c.do(ctx, http.MethodGet, "/api/feeds", query, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetFeed calls GET /api/feeds/{id}
func (c *Client) GetFeed(ctx context.Context, feedID int64) (*models.FeedDetailResponse, error) {
	var detail models.FeedDetailResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/feeds/%d", feedID), nil, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Like calls POST /api/feeds/{id}/likes
func (c *Client) Like(ctx context.Context, feedID int64) error {
	return c.do(ctx, http.MethodPost, idPath("/api/feeds/%d/likes", feedID), nil, nil, nil)
}

// Unlike calls DELETE /api/feeds/{id}/likes
func (c *Client) Unlike(ctx context.Context, feedID int64) error {
	return c.do(ctx, http.MethodDelete, idPath("/api/feeds/%d/likes", feedID), nil, nil, nil)
}

// ListComments calls GET /api/feeds/{id}/comments
func (c *Client) ListComments(ctx context.Context, feedID int64) ([]models.CommentResponse, error) {
	var comments []models.CommentResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/feeds/%d/comments", feedID), nil, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment calls POST /api/feeds/{id}/comments
func (c *Client) CreateComment(ctx context.Context, feedID int64, content string) (*models.CommentResponse, error) {
	var comment models.CommentResponse
	req := models.CommentRequest{Content: content}
	if err := c.do(ctx, http.MethodPost, idPath("/api/feeds/%d/comments", feedID), nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Apply calls POST /api/feeds/{id}/applications
func (c *Client) Apply(ctx context.Context, feedID int64, stack string) (*models.ApplicationResponse, error) {
	var app models.ApplicationResponse
	req := models.ApplyRequest{Stack: stack}
	if err := c.do(ctx, http.MethodPost, idPath("/api/feeds/%d/applications", feedID), nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications calls GET /api/feeds/{id}/applications
func (c *Client) ListApplications(ctx context.Context, feedID int64) ([]models.ApplicationResponse, error) {
	var apps []models.ApplicationResponse
	if err := c.do(ctx, http.MethodGet, idPath("/api/feeds/%d/applications", feedID), nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ApproveApplication calls POST /api/feeds/{id}/applications/{appId}/approve
func (c *Client) ApproveApplication(ctx context.Context, feedID, appID int64) (*models.ApplicationResponse, error) {
	return c.decide(ctx, feedID, appID, "approve")
}

// RejectApplication calls POST /api/feeds/{id}/applications/{appId}/reject
func (c *Client) RejectApplication(ctx context.Context, feedID, appID int64) (*models.ApplicationResponse, error) {
	return c.decide(ctx, feedID, appID, "reject")
}

func (c *Client) decide(ctx context.Context, feedID, appID int64, action string) (*models.ApplicationResponse, error) {
	var app models.ApplicationResponse
	path := idPath("/api/feeds/%d/applications/%d/", feedID, appID) + action
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
