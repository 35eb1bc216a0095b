// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/danielhkuo/onewave/auth"
	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/middleware"
	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/notify"
)

type UserHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	mailer notify.Mailer
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg, mailer: notify.LogMailer{}}
}

// GetMe handles GET /api/users/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.loadUser(r, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /api/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, err := h.loadUser(r, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || textLen(name) > maxNameLen {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name must be 1-100 characters")
			return
		}
		user.Name = name
	}
	if req.BirthDate != nil {
		if *req.BirthDate != "" && !validBirthDate(*req.BirthDate) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
			return
		}
		user.BirthDate = *req.BirthDate
	}
	if req.Gender != nil {
		if *req.Gender != "" && !req.Gender.Valid() {
			middleware.ErrorResponse(w, http.StatusBadRequest, "gender must be MALE, FEMALE or OTHER")
			return
		}
		user.Gender = *req.Gender
	}

	_, err = h.db.ExecContext(r.Context(), `
		UPDATE users SET name = $1, birth_date = $2, gender = $3 WHERE id = $4
	`, user.Name, nullString(user.BirthDate), nullString(string(user.Gender)), userID)
	if err != nil {
		slog.Error("failed to update user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}

// DeleteMe handles DELETE /api/users/me.
// Ideas, feeds, likes, comments and applications cascade.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	res, err := h.db.ExecContext(r.Context(), "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		slog.Error("failed to delete user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete account")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("user deleted", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

// RequestPasswordCode handles POST /api/users/me/password/email
func (h *UserHandler) RequestPasswordCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.loadUser(r, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := issueCode(r.Context(), h.db, h.mailer, h.cfg.JWTSecret, user.Email, purposePassword); err != nil {
		slog.Error("failed to issue password code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Verification code sent"})
}

// ChangePassword handles PATCH /api/users/me/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.PasswordChangeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}
	if !auth.ValidPasswordLength(req.NewPassword) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be 6-100 characters")
		return
	}

	user, err := h.loadUser(r, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := checkCode(r.Context(), h.db, h.cfg.JWTSecret, user.Email, purposePassword, strings.TrimSpace(req.Code)); err != nil {
		if !isCodeError(err) {
			slog.Error("failed to check password code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, codeMessage(err))
		return
	}

	if err := updatePassword(r, h.db, h.cfg, "id = $2", userID, req.NewPassword); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to change password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to change password")
		return
	}

	if err := consumeCode(r.Context(), h.db, user.Email, purposePassword); err != nil {
		slog.Warn("failed to clear password code", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Password changed"})
}

// UpdateProfileImage handles PATCH /api/users/me/profile-image
func (h *UserHandler) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.ProfileImageUpdateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	imageURL := strings.TrimSpace(req.ImageURL)
	u, err := url.Parse(imageURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "imageUrl must be an http(s) URL")
		return
	}

	res, err := h.db.ExecContext(r.Context(), "UPDATE users SET profile_image_url = $1 WHERE id = $2", imageURL, userID)
	if err != nil {
		slog.Error("failed to update profile image", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update profile image")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ProfileImageResponse{ImageURL: imageURL})
}

// MyTeams handles GET /api/users/me/teams.
// Lists feeds the caller joined through an approved application.
func (h *UserHandler) MyTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT a.feed_id, i.title, u.name, a.stack, a.decided_at
		FROM application a
		JOIN feed f ON f.id = a.feed_id
		JOIN idea i ON i.id = f.idea_id
		JOIN users u ON u.id = i.user_id
		WHERE a.user_id = $1 AND a.status = $2
		ORDER BY a.decided_at DESC, a.id DESC
	`, userID, models.StatusApproved)
	if err != nil {
		slog.Error("failed to query teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	teams := []models.MyTeamResponse{}
	for rows.Next() {
		var (
			team     models.MyTeamResponse
			joinedAt sql.NullTime
		)
		if err := rows.Scan(&team.FeedID, &team.IdeaTitle, &team.OwnerName, &team.Stack, &joinedAt); err != nil {
			slog.Error("failed to scan team", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		team.JoinedAt = joinedAt.Time
		teams = append(teams, team)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, teams)
}

func (h *UserHandler) loadUser(r *http.Request, userID int64) (models.UserResponse, error) {
	var (
		user                      models.UserResponse
		birthDate, gender, avatar sql.NullString
	)
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, email, name, birth_date, gender, profile_image_url
		FROM users WHERE id = $1
	`, userID).Scan(&user.UserID, &user.Email, &user.Name, &birthDate, &gender, &avatar)
	if err != nil {
		return user, err
	}
	user.BirthDate = birthDate.String
	user.Gender = models.Gender(gender.String)
	user.ProfileImageURL = avatar.String
	return user, nil
}
