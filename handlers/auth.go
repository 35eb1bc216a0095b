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

	"github.com/danielhkuo/onewave/auth"
	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/middleware"
	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/notify"
)

const maxNameLen = 100

type AuthHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	mailer notify.Mailer
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mailer: notify.LogMailer{}}
}

// RequestSignupCode handles POST /api/auth/signup/email
func (h *AuthHandler) RequestSignupCode(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	exists, err := h.emailExists(r, email)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "Email is already registered")
		return
	}

	if err := issueCode(r.Context(), h.db, h.mailer, h.cfg.JWTSecret, email, purposeSignup); err != nil {
		slog.Error("failed to issue signup code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to send verification code")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Verification code sent"})
}

// VerifySignupCode handles POST /api/auth/signup/email/verify
func (h *AuthHandler) VerifySignupCode(w http.ResponseWriter, r *http.Request) {
	var req models.EmailVerifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Code) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and code are required")
		return
	}

	if err := checkCode(r.Context(), h.db, h.cfg.JWTSecret, email, purposeSignup, strings.TrimSpace(req.Code)); err != nil {
		if !isCodeError(err) {
			slog.Error("failed to check signup code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, codeMessage(err))
		return
	}

	if err := markVerified(r.Context(), h.db, email, purposeSignup); err != nil {
		slog.Error("failed to mark email verified", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Email verified"})
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := normalizeEmail(req.Email)
	name := strings.TrimSpace(req.Name)

	// Validate input
	if !validEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}
	if name == "" || textLen(name) > maxNameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must be 1-100 characters")
		return
	}
	if !auth.ValidPasswordLength(req.Password) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be 6-100 characters")
		return
	}
	if req.BirthDate != "" && !validBirthDate(req.BirthDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "birthDate must be YYYY-MM-DD")
		return
	}
	if req.Gender != "" && !req.Gender.Valid() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "gender must be MALE, FEMALE or OTHER")
		return
	}

	exists, err := h.emailExists(r, email)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "Email is already registered")
		return
	}

	verified, err := isVerified(r.Context(), h.db, email)
	if err != nil {
		slog.Error("failed to check email verification", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !verified {
		middleware.ErrorResponse(w, http.StatusForbidden, "Email has not been verified")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.PasswordCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	var userID int64
	err = h.db.QueryRowContext(r.Context(), `
		INSERT INTO users (email, password_hash, name, birth_date, gender, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, email, hash, name, nullString(req.BirthDate), nullString(string(req.Gender)), time.Now()).Scan(&userID)
	if isUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Email is already registered")
		return
	}
	if err != nil {
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	if err := consumeCode(r.Context(), h.db, email, purposeSignup); err != nil {
		slog.Warn("failed to clear signup code", "error", err)
	}

	slog.Info("user signed up", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "Signup complete"})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and password are required")
		return
	}

	var (
		userID int64
		hash   string
	)
	err := h.db.QueryRowContext(r.Context(), "SELECT id, password_hash FROM users WHERE email = $1", email).Scan(&userID, &hash)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.IssueToken(h.cfg.JWTSecret, userID, h.cfg.TokenTTL)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("user logged in", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.AuthResponse{
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
	})
}

// ForgotPassword handles POST /api/auth/password/forgot.
// The reply is the same whether or not the account exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.EmailRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "A valid email is required")
		return
	}

	exists, err := h.emailExists(r, email)
	if err != nil {
		slog.Error("failed to query user", "error", err)
	} else if exists {
		if err := issueCode(r.Context(), h.db, h.mailer, h.cfg.JWTSecret, email, purposeReset); err != nil {
			slog.Error("failed to issue reset code", "error", err)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "If the account exists, a reset code has been sent",
	})
}

// ResetPassword handles POST /api/auth/password/reset
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Code) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email and code are required")
		return
	}
	if !auth.ValidPasswordLength(req.NewPassword) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be 6-100 characters")
		return
	}

	if err := checkCode(r.Context(), h.db, h.cfg.JWTSecret, email, purposeReset, strings.TrimSpace(req.Code)); err != nil {
		if !isCodeError(err) {
			slog.Error("failed to check reset code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, codeMessage(err))
		return
	}

	if err := updatePassword(r, h.db, h.cfg, "email = $2", email, req.NewPassword); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid verification code")
			return
		}
		slog.Error("failed to reset password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	if err := consumeCode(r.Context(), h.db, email, purposeReset); err != nil {
		slog.Warn("failed to clear reset code", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Password has been reset"})
}

func (h *AuthHandler) emailExists(r *http.Request, email string) (bool, error) {
	var exists bool
	err := h.db.QueryRowContext(r.Context(), "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", email).Scan(&exists)
	return exists, err
}

// updatePassword hashes and stores a new password for the user matched by
// where, which must reference $2. Returns sql.ErrNoRows when nothing matched.
func updatePassword(r *http.Request, db *sql.DB, cfg cliparse.Config, where string, key any, password string) error {
	hash, err := auth.HashPassword(password, cfg.PasswordCost)
	if err != nil {
		return err
	}

	res, err := db.ExecContext(r.Context(), "UPDATE users SET password_hash = $1 WHERE "+where, hash, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func isCodeError(err error) bool {
	return errors.Is(err, errCodeMissing) || errors.Is(err, errCodeExpired) ||
		errors.Is(err, errTooManyAttempts) || errors.Is(err, auth.ErrInvalidCode)
}

func validBirthDate(s string) bool {
	d, err := time.Parse("2006-01-02", s)
	return err == nil && !d.After(time.Now())
}

// nullString maps "" to NULL
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
