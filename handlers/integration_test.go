// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/danielhkuo/onewave/analysis"
	"github.com/danielhkuo/onewave/auth"
	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/testutil"
)

// signupAndLogin walks the email verification flow and returns the user ID
func signupAndLogin(t *testing.T, db *sql.DB, cfg cliparse.Config, email, name string) int64 {
	t.Helper()

	authHandler := NewAuthHandler(db, cfg)
	mailer := newRecordingMailer()
	authHandler.mailer = mailer

	w := serve(authHandler.RequestSignupCode, testutil.MakeRequest("POST", "/api/auth/signup/email",
		models.EmailRequest{Email: email}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Request code for %s failed: %d - %s", email, w.Code, w.Body.String())
	}
	w = serve(authHandler.VerifySignupCode, testutil.MakeRequest("POST", "/api/auth/signup/email/verify",
		models.EmailVerifyRequest{Email: email, Code: mailer.code(email, purposeSignup)}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Verify %s failed: %d - %s", email, w.Code, w.Body.String())
	}
	w = serve(authHandler.Signup, testutil.MakeRequest("POST", "/api/auth/signup",
		models.SignupRequest{Email: email, Password: "s3cret-pass", Name: name}, nil))
	if w.Code != http.StatusCreated {
		t.Fatalf("Signup %s failed: %d - %s", email, w.Code, w.Body.String())
	}
	w = serve(authHandler.Login, testutil.MakeRequest("POST", "/api/auth/login",
		models.LoginRequest{Email: email, Password: "s3cret-pass"}, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Login %s failed: %d - %s", email, w.Code, w.Body.String())
	}

	var resp models.AuthResponse
	testutil.AssertJSON(t, w, &resp)
	userID, err := auth.ParseToken(cfg.JWTSecret, resp.AccessToken)
	if err != nil {
		t.Fatalf("Login %s returned an unusable token: %v", email, err)
	}
	return userID
}

// TestFullTeamWorkflow tests the complete lifecycle: signup → idea →
// analysis → publish → like/comment → apply → approve → team
func TestFullTeamWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	ideas := NewIdeaHandler(db, cfg)
	ideas.scorer = &fixedScorer{result: analysis.Result{Market: 82, Innovation: 74, Feasibility: 66, Total: 74}}
	feeds := NewFeedHandler(db, cfg)
	apps := NewApplicationHandler(db, cfg)
	notifier := &recordingNotifier{}
	apps.notifier = notifier
	users := NewUserHandler(db, cfg)

	// Step 1: founder signs up
	founderID := signupAndLogin(t, db, cfg, "founder@example.com", "Founder")
	t.Logf("Step 1 - Founder signed up: %d", founderID)

	// Step 2: create idea
	w := serve(ideas.CreateIdea, authed("POST", "/api/ideas", validIdea(), founderID))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create idea failed: %d - %s", w.Code, w.Body.String())
	}
	var idea models.IdeaResponse
	testutil.AssertJSON(t, w, &idea)
	t.Logf("Step 2 - Created idea: %d", idea.IdeaID)

	// Step 3: analyze
	w = serve(ideas.AnalyzeIdea, authed("POST", "/", nil, founderID, "id", itoa(idea.IdeaID)))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 3 - Analyze failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 3 - Idea analyzed")

	// Step 4: publish with two positions
	w = serve(feeds.CreateFeed, authed("POST", "/api/feeds", models.FeedCreateRequest{
		IdeaID:    idea.IdeaID,
		Positions: []models.PositionRequest{{Stack: "Backend", Capacity: 1}, {Stack: "Design", Capacity: 1}},
	}, founderID))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Publish failed: %d - %s", w.Code, w.Body.String())
	}
	var detail models.FeedDetailResponse
	testutil.AssertJSON(t, w, &detail)
	fid := itoa(detail.FeedID)
	t.Logf("Step 4 - Published feed: %d", detail.FeedID)

	// Step 5: developer signs up, likes and comments
	devID := signupAndLogin(t, db, cfg, "dev@example.com", "Dev")
	w = serve(feeds.Like, authed("POST", "/", nil, devID, "id", fid))
	if w.Code != http.StatusNoContent {
		t.Fatalf("Step 5 - Like failed: %d - %s", w.Code, w.Body.String())
	}
	w = serve(feeds.CreateComment, authed("POST", "/", models.CommentRequest{Content: "I can build the API"}, devID, "id", fid))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 5 - Comment failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 5 - Developer liked and commented")

	// Step 6: feed shows up in the list with score and counts
	w = serve(feeds.ListFeeds, authed("GET", "/api/feeds?sort=score", nil, devID))
	var items []models.FeedListItem
	testutil.AssertJSON(t, w, &items)
	if len(items) != 1 || items[0].TotalScore == nil || *items[0].TotalScore != 74 ||
		items[0].LikeCount != 1 || items[0].CommentCount != 1 || !items[0].LikedByMe {
		t.Fatalf("Step 6 - Unexpected feed list: %+v", items)
	}
	t.Log("Step 6 - Feed listed")

	// Step 7: developer applies
	w = serve(apps.Apply, authed("POST", "/", models.ApplyRequest{Stack: "backend"}, devID, "id", fid))
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 7 - Apply failed: %d - %s", w.Code, w.Body.String())
	}
	var app models.ApplicationResponse
	testutil.AssertJSON(t, w, &app)
	if len(notifier.events) != 1 {
		t.Errorf("Step 7 - Expected owner notification, got %d", len(notifier.events))
	}
	t.Logf("Step 7 - Applied: %d", app.ApplicationID)

	// Step 8: owner reviews and approves
	w = serve(apps.ListApplications, authed("GET", "/", nil, founderID, "id", fid))
	var pending []models.ApplicationResponse
	testutil.AssertJSON(t, w, &pending)
	if len(pending) != 1 || pending[0].Status != models.StatusPending {
		t.Fatalf("Step 8 - Unexpected applications: %+v", pending)
	}
	w = serve(apps.Approve, authed("POST", "/", nil, founderID, "id", fid, "appId", itoa(app.ApplicationID)))
	if w.Code != http.StatusOK {
		t.Fatalf("Step 8 - Approve failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 8 - Application approved")

	// Step 9: team is visible from both sides
	w = serve(feeds.GetFeed, authed("GET", "/", nil, 0, "id", fid))
	testutil.AssertJSON(t, w, &detail)
	if len(detail.Members) != 2 || detail.Members[1].Name != "Dev" || detail.IsOwner {
		t.Errorf("Step 9 - Unexpected members for anonymous viewer: %+v (isOwner=%v)", detail.Members, detail.IsOwner)
	}
	for _, p := range detail.Positions {
		if p.Stack == "Backend" && p.Remaining != 0 {
			t.Errorf("Step 9 - Backend seat should be taken: %+v", p)
		}
		if p.Stack == "Design" && p.Remaining != 1 {
			t.Errorf("Step 9 - Design seat should be open: %+v", p)
		}
	}

	w = serve(users.MyTeams, authed("GET", "/api/users/me/teams", nil, devID))
	var teams []models.MyTeamResponse
	testutil.AssertJSON(t, w, &teams)
	if len(teams) != 1 || teams[0].FeedID != detail.FeedID {
		t.Errorf("Step 9 - Unexpected teams: %+v", teams)
	}
	t.Log("Step 9 - Team complete")
}

// TestRejectedApplicantCannotReapply ensures the one-application rule holds
// after a rejection
func TestRejectedApplicantCannotReapply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	apps := NewApplicationHandler(db, cfg)
	apps.notifier = &recordingNotifier{}

	ownerID, _ := testutil.CreateTestUser(t, db, cfg, "owner@example.com", "Owner")
	devID, _ := testutil.CreateTestUser(t, db, cfg, "dev@example.com", "Dev")
	feedID := testutil.CreateTestFeed(t, db, testutil.CreateTestIdea(t, db, ownerID, "Picky"), map[string]int{"qa": 1})
	appID := testutil.CreateTestApplication(t, db, feedID, devID, "qa")

	w := serve(apps.Reject, authed("POST", "/", nil, ownerID, "id", itoa(feedID), "appId", itoa(appID)))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = serve(apps.Apply, authed("POST", "/", models.ApplyRequest{Stack: "qa"}, devID, "id", itoa(feedID)))
	testutil.AssertStatus(t, w, http.StatusConflict)
}
