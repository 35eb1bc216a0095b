// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start and completion with a request_id, status and duration_ms.
The ID is taken from X-Request-ID or generated, and echoed back. Each request
is also counted in the metrics package under its ServeMux pattern.

# Authentication

	mux.HandleFunc("GET /api/users/me", middleware.WithLogging(
		middleware.RequireAuth(cfg.JWTSecret, h.GetMe)))

RequireAuth answers 401 without a valid bearer token. OptionalAuth lets
anonymous requests through. Handlers read the caller with:

	userID, ok := middleware.UserIDFromContext(r.Context())

# Rate Limiting

	limiter := middleware.NewRateLimiter(cfg.AuthRatePerMin, 10)
	mux.HandleFunc("POST /api/auth/login", middleware.WithLogging(limiter.Limit(h.Login)))

One token bucket per client IP. Exceeding it returns 429.

# CORS

main wraps the whole mux so the web client can call the API from another
origin:

	server := http.Server{Handler: middleware.CORS(mux)}

The request Origin is reflected with credentials allowed; preflight
OPTIONS requests are answered directly.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.ApplyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Bodies over MaxBodyBytes fail to parse.

# Client IP

GetClientIP reads the first X-Forwarded-For hop, then X-Real-IP, then the
host part of RemoteAddr. The rate limiter keys on RemoteAddr alone unless it
was built WithTrustedProxy(true), and buckets idle for DefaultLimiterTTL are
evicted.
*/
package middleware
