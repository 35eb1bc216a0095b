// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the onewave API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: email verification, signup, login, password reset
  - UserHandler: profile, account deletion, password change, my teams
  - IdeaHandler: idea drafts and AI analysis
  - FeedHandler: published feeds, likes, comments
  - ApplicationHandler: team applications and owner decisions
  - RoadmapHandler: saved roadmap answers and plans

Handlers are created via constructor functions that accept *sql.DB and Config:

	feedHandler := handlers.NewFeedHandler(db, cfg)

Authenticated handlers read the caller from middleware.UserIDFromContext and
answer 401 when it is missing.

# Signup Flow

	POST /api/auth/signup/email        → RequestSignupCode (6-digit code, 10 min)
	POST /api/auth/signup/email/verify → VerifySignupCode (5 attempts)
	POST /api/auth/signup              → Signup (403 until verified)
	POST /api/auth/login               → Login (returns a bearer token)

Only an HMAC of each code is stored.

# Feeds

An idea is published at most once. Likes are idempotent: liking twice or
unliking a feed you never liked both answer 204. List items carry
likedByMe only when the request has a valid token.

# Applications

Applications move PENDING → APPROVED or PENDING → REJECTED, only by the feed
owner. Approval fills one seat of the applicant's position in the same
transaction and fails with 409 when the position is full.

# Roadmaps

Saved roadmaps store the four questionnaire answers. The plan itself is
computed by the roadmap package on request.
*/
package handlers
