// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/testutil"
)

func TestApply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewApplicationHandler(db, cfg)
	notifier := &recordingNotifier{}
	handler.notifier = notifier

	ownerID, _ := testutil.CreateTestUser(t, db, cfg, "owner@example.com", "Owner")
	devID, _ := testutil.CreateTestUser(t, db, cfg, "dev@example.com", "Dev")
	feedID := testutil.CreateTestFeed(t, db, testutil.CreateTestIdea(t, db, ownerID, "Hiring"), map[string]int{"Backend": 2})
	id := itoa(feedID)

	tests := []struct {
		name           string
		userID         int64
		feedID         string
		stack          string
		expectedStatus int
	}{
		{"own feed", ownerID, id, "Backend", http.StatusForbidden},
		{"unknown feed", devID, "777", "Backend", http.StatusNotFound},
		{"empty stack", devID, id, " ", http.StatusBadRequest},
		{"closed stack", devID, id, "Marketing", http.StatusBadRequest},
		{"anonymous", 0, id, "Backend", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(handler.Apply, authed("POST", "/", models.ApplyRequest{Stack: tt.stack}, tt.userID, "id", tt.feedID))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	// Stack matching ignores case and stores the declared name
	w := serve(handler.Apply, authed("POST", "/", models.ApplyRequest{Stack: "backend"}, devID, "id", id))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var app models.ApplicationResponse
	testutil.AssertJSON(t, w, &app)
	if app.Status != models.StatusPending || app.Stack != "Backend" || app.ApplicantName != "Dev" {
		t.Errorf("Unexpected application: %+v", app)
	}

	if len(notifier.events) != 1 {
		t.Fatalf("Expected 1 notification, got %d", len(notifier.events))
	}
	if ev := notifier.events[0]; ev.ApplicationID != app.ApplicationID || ev.IdeaTitle != "Hiring" || ev.Stack != "Backend" {
		t.Errorf("Unexpected event: %+v", ev)
	}

	w = serve(handler.Apply, authed("POST", "/", models.ApplyRequest{Stack: "Backend"}, devID, "id", id))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestApply_NotifierFailureIsIgnored(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewApplicationHandler(db, cfg)
	handler.notifier = &recordingNotifier{err: errors.New("webhook down")}

	ownerID, _ := testutil.CreateTestUser(t, db, cfg, "owner@example.com", "Owner")
	devID, _ := testutil.CreateTestUser(t, db, cfg, "dev@example.com", "Dev")
	// No positions declared: any stack is accepted
	feedID := testutil.CreateTestFeed(t, db, testutil.CreateTestIdea(t, db, ownerID, "Open team"), nil)

	w := serve(handler.Apply, authed("POST", "/", models.ApplyRequest{Stack: "Data"}, devID, "id", itoa(feedID)))
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestApply_NotifierIsBounded(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewApplicationHandler(db, cfg)
	notifier := &recordingNotifier{}
	handler.notifier = notifier

	ownerID, _ := testutil.CreateTestUser(t, db, cfg, "owner@example.com", "Owner")
	devID, _ := testutil.CreateTestUser(t, db, cfg, "dev@example.com", "Dev")
	feedID := testutil.CreateTestFeed(t, db, testutil.CreateTestIdea(t, db, ownerID, "Open team"), nil)

	w := serve(handler.Apply, authed("POST", "/", models.ApplyRequest{Stack: "Data"}, devID, "id", itoa(feedID)))
	testutil.AssertStatus(t, w, http.StatusCreated)

	if !notifier.hasDeadline {
		t.Error("Expected the notification to run under a deadline")
	}
}

func TestListApplications(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewApplicationHandler(db, cfg)
	ownerID, _ := testutil.CreateTestUser(t, db, cfg, "owner@example.com", "Owner")
	aID, _ := testutil.CreateTestUser(t, db, cfg, "a@example.com", "A")
	bID, _ := testutil.CreateTestUser(t, db, cfg, "b@example.com", "B")
	feedID := testutil.CreateTestFeed(t, db, testutil.CreateTestIdea(t, db, ownerID, "Crew"), map[string]int{"web": 3})

	first := testutil.CreateTestApplication(t, db, feedID, aID, "web")
	second := testutil.CreateTestApplication(t, db, feedID, bID, "web")

	w := serve(handler.ListApplications, authed("GET", "/", nil, ownerID, "id", itoa(feedID)))
	testutil.AssertStatus(t, w, http.StatusOK)

	var apps []models.ApplicationResponse
	testutil.AssertJSON(t, w, &apps)
	if len(apps) != 2 || apps[0].ApplicationID != second || apps[1].ApplicationID != first {
		t.Errorf("Expected newest first [%d %d], got %+v", second, first, apps)
	}

	w = serve(handler.ListApplications, authed("GET", "/", nil, aID, "id", itoa(feedID)))
	testutil.AssertStatus(t, w, http.StatusForbidden)
}

func TestDecideApplication(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewApplicationHandler(db, cfg)
	feeds := NewFeedHandler(db, cfg)

	ownerID, _ := testutil.CreateTestUser(t, db, cfg, "owner@example.com", "Owner")
	aID, _ := testutil.CreateTestUser(t, db, cfg, "a@example.com", "A")
	bID, _ := testutil.CreateTestUser(t, db, cfg, "b@example.com", "B")
	cID, _ := testutil.CreateTestUser(t, db, cfg, "c@example.com", "C")
	feedID := testutil.CreateTestFeed(t, db, testutil.CreateTestIdea(t, db, ownerID, "Seats"), map[string]int{"ios": 1})
	otherFeed := testutil.CreateTestFeed(t, db, testutil.CreateTestIdea(t, db, ownerID, "Elsewhere"), nil)
	fid := itoa(feedID)

	appA := testutil.CreateTestApplication(t, db, feedID, aID, "ios")
	appB := testutil.CreateTestApplication(t, db, feedID, bID, "ios")
	appC := testutil.CreateTestApplication(t, db, feedID, cID, "ios")

	decide := func(h http.HandlerFunc, userID int64, feed string, app int64) int {
		return serve(h, authed("POST", "/", nil, userID, "id", feed, "appId", itoa(app))).Code
	}

	t.Run("only the owner decides", func(t *testing.T) {
		if code := decide(handler.Approve, aID, fid, appB); code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", code)
		}
	})

	t.Run("application must belong to the feed", func(t *testing.T) {
		if code := decide(handler.Approve, ownerID, itoa(otherFeed), appA); code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", code)
		}
	})

	// Approve A: takes the only seat
	w := serve(handler.Approve, authed("POST", "/", nil, ownerID, "id", fid, "appId", itoa(appA)))
	testutil.AssertStatus(t, w, http.StatusOK)
	var app models.ApplicationResponse
	testutil.AssertJSON(t, w, &app)
	if app.Status != models.StatusApproved {
		t.Errorf("Expected APPROVED, got %s", app.Status)
	}

	t.Run("decisions are terminal", func(t *testing.T) {
		if code := decide(handler.Reject, ownerID, fid, appA); code != http.StatusConflict {
			t.Errorf("Expected 409 rejecting an approved application, got %d", code)
		}
		if code := decide(handler.Approve, ownerID, fid, appA); code != http.StatusConflict {
			t.Errorf("Expected 409 approving twice, got %d", code)
		}
	})

	t.Run("position full", func(t *testing.T) {
		if code := decide(handler.Approve, ownerID, fid, appB); code != http.StatusConflict {
			t.Errorf("Expected 409 when the position is full, got %d", code)
		}
		var status models.ApplicationStatus
		if err := db.QueryRow("SELECT status FROM application WHERE id = $1", appB).Scan(&status); err != nil {
			t.Fatalf("Failed to read status: %v", err)
		}
		if status != models.StatusPending {
			t.Errorf("Failed approval must roll back, status is %s", status)
		}
	})

	// Rejection does not need a seat
	if code := decide(handler.Reject, ownerID, fid, appC); code != http.StatusOK {
		t.Errorf("Expected 200 rejecting, got %d", code)
	}

	w = serve(feeds.GetFeed, authed("GET", "/", nil, ownerID, "id", fid))
	var d models.FeedDetailResponse
	testutil.AssertJSON(t, w, &d)
	if len(d.Positions) != 1 || d.Positions[0].Filled != 1 || d.Positions[0].Remaining != 0 {
		t.Errorf("Unexpected positions: %+v", d.Positions)
	}
	if len(d.Members) != 2 || d.Members[1].UserID != aID || d.Members[1].Role != models.RoleMember || d.Members[1].Stack != "ios" {
		t.Errorf("Expected owner plus approved member, got %+v", d.Members)
	}
}
