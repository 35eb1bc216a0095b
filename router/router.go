// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/handlers"
	"github.com/danielhkuo/onewave/metrics"
	"github.com/danielhkuo/onewave/middleware"
)

// authBurst is how many auth requests one IP may send back to back
const authBurst = 10

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	ideaHandler := handlers.NewIdeaHandler(db, cfg)
	feedHandler := handlers.NewFeedHandler(db, cfg)
	applicationHandler := handlers.NewApplicationHandler(db, cfg)
	roadmapHandler := handlers.NewRoadmapHandler(db, cfg)

	limiter := middleware.NewRateLimiter(cfg.AuthRatePerMin, authBurst,
		middleware.WithTrustedProxy(cfg.TrustProxy))

	public := middleware.WithLogging
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(limiter.Limit(h))
	}
	bearer := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, h))
	}
	optional := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.OptionalAuth(cfg.JWTSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Auth (rate limited per IP)
	mux.HandleFunc("POST /api/auth/signup/email", limited(authHandler.RequestSignupCode))
	mux.HandleFunc("POST /api/auth/signup/email/verify", limited(authHandler.VerifySignupCode))
	mux.HandleFunc("POST /api/auth/signup", limited(authHandler.Signup))
	mux.HandleFunc("POST /api/auth/login", limited(authHandler.Login))
	mux.HandleFunc("POST /api/auth/password/forgot", limited(authHandler.ForgotPassword))
	mux.HandleFunc("POST /api/auth/password/reset", limited(authHandler.ResetPassword))

	// Current user
	mux.HandleFunc("GET /api/users/me", bearer(userHandler.GetMe))
	mux.HandleFunc("PATCH /api/users/me", bearer(userHandler.UpdateMe))
	mux.HandleFunc("DELETE /api/users/me", bearer(userHandler.DeleteMe))
	mux.HandleFunc("POST /api/users/me/password/email", bearer(userHandler.RequestPasswordCode))
	mux.HandleFunc("PATCH /api/users/me/password", bearer(userHandler.ChangePassword))
	mux.HandleFunc("PATCH /api/users/me/profile-image", bearer(userHandler.UpdateProfileImage))
	mux.HandleFunc("GET /api/users/me/teams", bearer(userHandler.MyTeams))

	// Ideas (owner only)
	mux.HandleFunc("POST /api/ideas", bearer(ideaHandler.CreateIdea))
	mux.HandleFunc("GET /api/ideas", bearer(ideaHandler.ListIdeas))
	mux.HandleFunc("GET /api/ideas/{id}", bearer(ideaHandler.GetIdea))
	mux.HandleFunc("POST /api/ideas/{id}/analysis", bearer(ideaHandler.AnalyzeIdea))
	mux.HandleFunc("GET /api/ideas/{id}/analysis", bearer(ideaHandler.GetAnalysis))

	// Feeds
	mux.HandleFunc("POST /api/feeds", bearer(feedHandler.CreateFeed))
	mux.HandleFunc("GET /api/feeds", optional(feedHandler.ListFeeds))
	mux.HandleFunc("GET /api/feeds/{id}", optional(feedHandler.GetFeed))
	mux.HandleFunc("POST /api/feeds/{id}/likes", bearer(feedHandler.Like))
	mux.HandleFunc("DELETE /api/feeds/{id}/likes", bearer(feedHandler.Unlike))
	mux.HandleFunc("GET /api/feeds/{id}/comments", public(feedHandler.ListComments))
	mux.HandleFunc("POST /api/feeds/{id}/comments", bearer(feedHandler.CreateComment))

	// Team applications
	mux.HandleFunc("POST /api/feeds/{id}/applications", bearer(applicationHandler.Apply))
	mux.HandleFunc("GET /api/feeds/{id}/applications", bearer(applicationHandler.ListApplications))
	mux.HandleFunc("POST /api/feeds/{id}/applications/{appId}/approve", bearer(applicationHandler.Approve))
	mux.HandleFunc("POST /api/feeds/{id}/applications/{appId}/reject", bearer(applicationHandler.Reject))

	// Roadmaps
	mux.HandleFunc("GET /api/roadmaps/plan", public(roadmapHandler.PreviewPlan))
	mux.HandleFunc("POST /api/roadmaps", bearer(roadmapHandler.CreateRoadmap))
	mux.HandleFunc("GET /api/roadmaps", bearer(roadmapHandler.ListRoadmaps))
	mux.HandleFunc("GET /api/roadmaps/{id}", bearer(roadmapHandler.GetRoadmap))
	mux.HandleFunc("DELETE /api/roadmaps/{id}", bearer(roadmapHandler.DeleteRoadmap))
	mux.HandleFunc("GET /api/roadmaps/{id}/plan", bearer(roadmapHandler.GetRoadmapPlan))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("onewave API v1"))
	})

	return mux
}
