// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/roadmap"
	"github.com/google/go-cmp/cmp"
)

func TestClient_BearerHeader(t *testing.T) {
	var gotAuth []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.UserResponse{UserID: 7, Email: "a@b.com"})
	}))
	defer srv.Close()

	anon := New(srv.URL)
	if _, err := anon.Me(context.Background()); err != nil {
		t.Fatalf("Me failed: %v", err)
	}

	c := New(srv.URL+"/", WithTokenSource(StaticToken("tok-123")))
	user, err := c.Me(context.Background())
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if user.UserID != 7 {
		t.Errorf("Expected user 7, got %d", user.UserID)
	}

	want := []string{"", "Bearer tok-123"}
	if diff := cmp.Diff(want, gotAuth); diff != "" {
		t.Errorf("Authorization headers mismatch (-want +got):\n%s", diff)
	}
	if c.BaseURL() != srv.URL {
		t.Errorf("Expected trailing slash trimmed, got %s", c.BaseURL())
	}
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/feeds/1":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Not Found", Message: "feed not found"})
		default:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		}
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.GetFeed(context.Background(), 1)
	if !IsStatus(err, http.StatusNotFound) {
		t.Fatalf("Expected 404 APIError, got %v", err)
	}
	if err.Error() != "feed not found" {
		t.Errorf("Expected server message, got %q", err.Error())
	}

	_, err = c.GetFeed(context.Background(), 2)
	if !IsStatus(err, http.StatusBadGateway) {
		t.Fatalf("Expected 502 APIError, got %v", err)
	}
	if err.Error() != "request failed with status 502" {
		t.Errorf("Expected fallback message, got %q", err.Error())
	}
	if IsStatus(errors.New("plain"), http.StatusBadGateway) {
		t.Error("Plain errors should not match a status")
	}
}

func TestClient_NoContent(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.Unlike(context.Background(), 42); err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}
	if method != http.MethodDelete || path != "/api/feeds/42/likes" {
		t.Errorf("Unexpected request %s %s", method, path)
	}
	if err := c.DeleteMe(context.Background()); err != nil {
		t.Fatalf("DeleteMe failed: %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL)
	err := c.Like(ctx, 1)
	if err == nil {
		t.Fatal("Expected error from cancelled request")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected wrapped context.Canceled, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "POST /api/feeds/1/likes") {
		t.Errorf("Expected method and path in error, got %q", err.Error())
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("Transport failures should not be APIErrors")
	}
}

func TestClient_RequestShapes(t *testing.T) {
	type seen struct {
		Method string
		Path   string
		Query  string
		Body   string
	}
	var got []seen
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = append(got, seen{r.Method, r.URL.Path, r.URL.RawQuery, strings.TrimSpace(string(body))})

		switch {
		case strings.HasSuffix(r.URL.Path, "/approve"), strings.HasSuffix(r.URL.Path, "/reject"):
			json.NewEncoder(w).Encode(models.ApplicationResponse{ApplicationID: 9, Status: models.StatusApproved})
		case r.URL.Path == "/api/feeds":
			w.Write([]byte("[]"))
		default:
			w.Write([]byte("{}"))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := New(srv.URL)

	if _, err := c.ListFeeds(ctx, ListFeedsOptions{Category: models.CategorySaaS, Sort: "popular"}); err != nil {
		t.Fatalf("ListFeeds failed: %v", err)
	}
	app, err := c.ApproveApplication(ctx, 3, 9)
	if err != nil {
		t.Fatalf("ApproveApplication failed: %v", err)
	}
	if app.Status != models.StatusApproved {
		t.Errorf("Expected APPROVED, got %s", app.Status)
	}
	if _, err := c.RejectApplication(ctx, 3, 10); err != nil {
		t.Fatalf("RejectApplication failed: %v", err)
	}
	if _, err := c.Apply(ctx, 3, "Backend"); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	answers := roadmap.Answers{
		TeamSize: roadmap.TeamSolo,
		Budget:   roadmap.BudgetZero,
		Period:   roadmap.Period1Month,
		Priority: roadmap.PriorityValidation,
	}
	if _, err := c.PreviewPlan(ctx, answers); err != nil {
		t.Fatalf("PreviewPlan failed: %v", err)
	}

	want := []seen{
		{"GET", "/api/feeds", "category=SAAS&sort=popular", ""},
		{"POST", "/api/feeds/3/applications/9/approve", "", ""},
		{"POST", "/api/feeds/3/applications/10/reject", "", ""},
		{"POST", "/api/feeds/3/applications", "", `{"stack":"Backend"}`},
		{"GET", "/api/roadmaps/plan", "budget=zero&period=1month&priority=validation&teamSize=solo", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Requests mismatch (-want +got):\n%s", diff)
	}
}
