// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/onewave/auth"
	"github.com/danielhkuo/onewave/notify"
)

// Verification code purposes
const (
	purposeSignup   = "signup"
	purposeReset    = "reset"
	purposePassword = "password"
)

const (
	codeTTL         = 10 * time.Minute
	maxCodeAttempts = 5
	// A verified signup email must be used within this window
	signupWindow = 30 * time.Minute
)

var (
	errCodeMissing     = errors.New("no verification code requested")
	errCodeExpired     = errors.New("verification code expired")
	errTooManyAttempts = errors.New("too many verification attempts")
)

// codeMessage maps code errors to client-facing messages
func codeMessage(err error) string {
	switch {
	case errors.Is(err, errCodeMissing):
		return "No verification code was requested for this email"
	case errors.Is(err, errCodeExpired):
		return "Verification code expired"
	case errors.Is(err, errTooManyAttempts):
		return "Too many attempts, request a new code"
	default:
		return "Invalid verification code"
	}
}

// issueCode generates a code, stores its hash and hands it to the mailer.
// Any earlier code for the same email and purpose is replaced.
func issueCode(ctx context.Context, db *sql.DB, mailer notify.Mailer, secret, email, purpose string) error {
	code, err := auth.GenerateVerificationCode()
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = db.ExecContext(ctx, `
		INSERT INTO verification_code (email, purpose, code_hash, attempts, expires_at, verified_at, created_at)
		VALUES ($1, $2, $3, 0, $4, NULL, $5)
		ON CONFLICT (email, purpose) DO UPDATE
		SET code_hash = excluded.code_hash, attempts = 0, expires_at = excluded.expires_at,
		    verified_at = NULL, created_at = excluded.created_at
	`, email, purpose, auth.HashCode(email, purpose, code, secret), now.Add(codeTTL), now)
	if err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	return mailer.SendCode(ctx, email, purpose, code)
}

// checkCode validates a submitted code. Failed attempts are counted; the
// caller decides what to do with a verified code.
func checkCode(ctx context.Context, db *sql.DB, secret, email, purpose, code string) error {
	var (
		hash      string
		attempts  int
		expiresAt time.Time
	)
	err := db.QueryRowContext(ctx, `
		SELECT code_hash, attempts, expires_at FROM verification_code
		WHERE email = $1 AND purpose = $2
	`, email, purpose).Scan(&hash, &attempts, &expiresAt)
	if err == sql.ErrNoRows {
		return errCodeMissing
	}
	if err != nil {
		return fmt.Errorf("failed to load verification code: %w", err)
	}

	if attempts >= maxCodeAttempts {
		return errTooManyAttempts
	}
	if time.Now().After(expiresAt) {
		return errCodeExpired
	}

	if err := auth.ValidateCode(email, purpose, code, hash, secret); err != nil {
		_, uerr := db.ExecContext(ctx, `
			UPDATE verification_code SET attempts = attempts + 1
			WHERE email = $1 AND purpose = $2
		`, email, purpose)
		if uerr != nil {
			return fmt.Errorf("failed to record attempt: %w", uerr)
		}
		return err
	}
	return nil
}

// markVerified records a successful signup verification
func markVerified(ctx context.Context, db *sql.DB, email, purpose string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE verification_code SET verified_at = $1 WHERE email = $2 AND purpose = $3
	`, time.Now(), email, purpose)
	return err
}

// isVerified reports whether email completed signup verification recently
func isVerified(ctx context.Context, db *sql.DB, email string) (bool, error) {
	var verifiedAt sql.NullTime
	err := db.QueryRowContext(ctx, `
		SELECT verified_at FROM verification_code WHERE email = $1 AND purpose = $2
	`, email, purposeSignup).Scan(&verifiedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return verifiedAt.Valid && time.Since(verifiedAt.Time) <= signupWindow, nil
}

// consumeCode deletes a code once it has been used
func consumeCode(ctx context.Context, db *sql.DB, email, purpose string) error {
	_, err := db.ExecContext(ctx, `
		DELETE FROM verification_code WHERE email = $1 AND purpose = $2
	`, email, purpose)
	return err
}
