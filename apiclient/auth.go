// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"net/http"

	"github.com/danielhkuo/onewave/models"
)

// RequestSignupCode calls POST /api/auth/signup/email
func (c *Client) RequestSignupCode(ctx context.Context, email string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup/email", nil, models.EmailRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifySignupCode calls POST /api/auth/signup/email/verify
func (c *Client) VerifySignupCode(ctx context.Context, email, code string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	req := models.EmailVerifyRequest{Email: email, Code: code}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup/email/verify", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup calls POST /api/auth/signup
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword calls POST /api/auth/password/forgot
func (c *Client) ForgotPassword(ctx context.Context, email string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/password/forgot", nil, models.EmailRequest{Email: email}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword calls POST /api/auth/password/reset
func (c *Client) ResetPassword(ctx context.Context, req models.PasswordResetRequest) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/password/reset", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me calls GET /api/users/me
func (c *Client) Me(ctx context.Context) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe calls PATCH /api/users/me
func (c *Client) UpdateMe(ctx context.Context, req models.UpdateUserRequest) (*models.UserResponse, error) {
	var user models.UserResponse
	if err := c.do(ctx, http.MethodPatch, "/api/users/me", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteMe calls DELETE /api/users/me
func (c *Client) DeleteMe(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/users/me", nil, nil, nil)
}

// RequestPasswordCode calls POST /api/users/me/password/email
func (c *Client) RequestPasswordCode(ctx context.Context) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/me/password/email", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword calls PATCH /api/users/me/password
func (c *Client) ChangePassword(ctx context.Context, code, newPassword string) (*models.MessageResponse, error) {
	var resp models.MessageResponse
	req := models.PasswordChangeRequest{Code: code, NewPassword: newPassword}
	if err := c.do(ctx, http.MethodPatch, "/api/users/me/password", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProfileImage calls PATCH /api/users/me/profile-image
func (c *Client) UpdateProfileImage(ctx context.Context, imageURL string) (*models.ProfileImageResponse, error) {
	var resp models.ProfileImageResponse
	req := models.ProfileImageUpdateRequest{ImageURL: imageURL}
	if err := c.do(ctx, http.MethodPatch, "/api/users/me/profile-image", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MyTeams calls GET /api/users/me/teams
func (c *Client) MyTeams(ctx context.Context) ([]models.MyTeamResponse, error) {
	var teams []models.MyTeamResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me/teams", nil, nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
