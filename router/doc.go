// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the onewave API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every API route is wrapped in middleware.WithLogging. Bearer routes add
middleware.RequireAuth, feed reads add middleware.OptionalAuth, and the
/api/auth routes share one per-IP rate limiter.

# Endpoints

Operational:

	GET /health  - Liveness
	GET /metrics - Prometheus metrics
	GET /        - Banner

Auth (rate limited):

	POST /api/auth/signup/email        - Send signup code
	POST /api/auth/signup/email/verify - Verify signup code
	POST /api/auth/signup              - Create account
	POST /api/auth/login               - Issue bearer token
	POST /api/auth/password/forgot     - Send reset code
	POST /api/auth/password/reset      - Reset password

Current user (bearer):

	GET|PATCH|DELETE /api/users/me
	POST  /api/users/me/password/email
	PATCH /api/users/me/password
	PATCH /api/users/me/profile-image
	GET   /api/users/me/teams

Ideas (bearer, owner):

	POST|GET /api/ideas
	GET      /api/ideas/{id}
	POST|GET /api/ideas/{id}/analysis

Feeds:

	POST   /api/feeds                  - Publish idea (bearer)
	GET    /api/feeds                  - List (optional bearer)
	GET    /api/feeds/{id}             - Detail (optional bearer)
	POST   /api/feeds/{id}/likes       - Like (bearer)
	DELETE /api/feeds/{id}/likes       - Unlike (bearer)
	GET    /api/feeds/{id}/comments    - Comments (public)
	POST   /api/feeds/{id}/comments    - Comment (bearer)

Team applications (bearer):

	POST /api/feeds/{id}/applications
	GET  /api/feeds/{id}/applications                     - Owner only
	POST /api/feeds/{id}/applications/{appId}/approve     - Owner only
	POST /api/feeds/{id}/applications/{appId}/reject      - Owner only

Roadmaps:

	GET         /api/roadmaps/plan       - Plan preview (public)
	POST|GET    /api/roadmaps            - Save / list (bearer)
	GET|DELETE  /api/roadmaps/{id}       - Owner only
	GET         /api/roadmaps/{id}/plan  - Plan for saved answers
*/
package router
