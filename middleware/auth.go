// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"

	"github.com/danielhkuo/onewave/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// ContextWithUserID returns a context carrying the authenticated user ID
func ContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID, if any
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// RequireAuth rejects requests without a valid bearer token with 401
func RequireAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := auth.BearerToken(r.Header.Get("Authorization"))
		if !ok {
			ErrorResponse(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		userID, err := auth.ParseToken(secret, token)
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
	}
}

// OptionalAuth attaches the user ID when a valid bearer token is present.
// Missing or invalid tokens are treated as anonymous.
func OptionalAuth(secret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token, ok := auth.BearerToken(r.Header.Get("Authorization")); ok {
			if userID, err := auth.ParseToken(secret, token); err == nil {
				r = r.WithContext(ContextWithUserID(r.Context(), userID))
			}
		}
		next(w, r)
	}
}
