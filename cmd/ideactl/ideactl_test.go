// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/danielhkuo/onewave/router"
	"github.com/danielhkuo/onewave/testutil"
)

func itoa(n int64) string { return strconv.FormatInt(n, 10) }

type cli struct {
	t         *testing.T
	apiURL    string
	tokenFile string
}

func (c cli) run(args ...string) (string, error) {
	c.t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", c.apiURL, "--token-file", c.tokenFile}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c cli) mustRun(step string, args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	if err != nil {
		c.t.Fatalf("%s - %v failed: %v\n%s", step, args, err, out)
	}
	c.t.Logf("%s - %s", step, strings.Join(args, " "))
	return out
}

func newCLI(t *testing.T, apiURL string) cli {
	home := t.TempDir()
	t.Setenv("HOME", home)
	return cli{t: t, apiURL: apiURL, tokenFile: filepath.Join(home, ".onewave", "token")}
}

func expectContains(t *testing.T, step, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Fatalf("%s - expected output to contain %q, got:\n%s", step, want, out)
	}
}

func TestCLIWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()

	ownerID, _ := testutil.CreateTestUser(t, db, cfg, "owner@example.com", "Owner")
	applicantID, _ := testutil.CreateTestUser(t, db, cfg, "dev@example.com", "Dev")
	ideaID := testutil.CreateTestIdea(t, db, ownerID, "Carpool matcher")
	feedID := testutil.CreateTestFeed(t, db, ideaID, map[string]int{"Backend": 1})
	appID := testutil.CreateTestApplication(t, db, feedID, applicantID, "Backend")

	srv := httptest.NewServer(router.NewRouter(db, cfg))
	defer srv.Close()

	c := newCLI(t, srv.URL)
	feed := itoa(feedID)

	if _, err := c.run("whoami"); err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("Step 0 - expected not logged in error, got %v", err)
	}

	out := c.mustRun("Step 1", "login", "--email", "owner@example.com", "--password", testutil.TestPassword)
	expectContains(t, "Step 1", out, "Logged in as Owner")
	if info, err := os.Stat(c.tokenFile); err != nil || info.Mode().Perm() != 0600 {
		t.Fatalf("Step 1 - expected 0600 token file, got %v, %v", info, err)
	}

	out = c.mustRun("Step 2", "whoami")
	expectContains(t, "Step 2", out, "owner@example.com")

	out = c.mustRun("Step 3", "feed", "list", "--sort", "popular")
	expectContains(t, "Step 3", out, "Carpool matcher")

	out = c.mustRun("Step 4", "feed", "like", feed)
	expectContains(t, "Step 4", out, "now has 1 likes")
	out = c.mustRun("Step 4", "feed", "like", feed)
	expectContains(t, "Step 4", out, "Already liked")

	out = c.mustRun("Step 5", "feed", "unlike", feed)
	expectContains(t, "Step 5", out, "now has 0 likes")
	out = c.mustRun("Step 5", "feed", "unlike", feed)
	expectContains(t, "Step 5", out, "Not liked yet")

	out = c.mustRun("Step 6", "comment", feed, "Count", "me", "in")
	expectContains(t, "Step 6", out, "posted")
	out = c.mustRun("Step 6", "comment", feed, "--list")
	expectContains(t, "Step 6", out, "Owner")
	expectContains(t, "Step 6", out, "Count me in")

	out = c.mustRun("Step 7", "applications", "list", feed)
	expectContains(t, "Step 7", out, "Dev")
	expectContains(t, "Step 7", out, "PENDING")

	out = c.mustRun("Step 8", "applications", "approve", feed, itoa(appID))
	expectContains(t, "Step 8", out, "is now APPROVED")

	if _, err := c.run("applications", "reject", feed, itoa(appID)); err == nil || !strings.Contains(err.Error(), "not pending") {
		t.Fatalf("Step 9 - expected not pending error, got %v", err)
	}

	out = c.mustRun("Step 10", "feed", "show", feed)
	expectContains(t, "Step 10", out, "Backend")
	expectContains(t, "Step 10", out, "1/1 filled")

	out = c.mustRun("Step 11", "logout")
	expectContains(t, "Step 11", out, "Logged out")
	if _, err := os.Stat(c.tokenFile); !os.IsNotExist(err) {
		t.Errorf("Step 11 - expected token file removed, got %v", err)
	}
	if _, err := c.run("whoami"); err == nil {
		t.Error("Step 11 - expected whoami to fail after logout")
	}
}

func TestCLIIdeaAndRoadmap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()
	cfg := testutil.GetTestConfig()
	testutil.CreateTestUser(t, db, cfg, "maker@example.com", "Maker")

	srv := httptest.NewServer(router.NewRouter(db, cfg))
	defer srv.Close()

	c := newCLI(t, srv.URL)
	c.mustRun("Step 1", "login", "--email", "maker@example.com", "--password", testutil.TestPassword)

	out := c.mustRun("Step 2", "idea", "create",
		"--title", "Plant doctor",
		"--problem", "Houseplants die because owners cannot tell what is wrong",
		"--customer", "Apartment plant owners",
		"--solution", "Photo diagnosis with care reminders",
		"--differentiation", "Community verified fixes",
		"--category", "saas",
		"--stage", "prototype")
	expectContains(t, "Step 2", out, "Idea #1 saved")

	out = c.mustRun("Step 3", "idea", "analyze", "1")
	expectContains(t, "Step 3", out, "Total ")

	out = c.mustRun("Step 4", "idea", "publish", "1", "--position", "Backend=2,Design=1")
	expectContains(t, "Step 4", out, "Published as feed #")

	out = c.mustRun("Step 5", "roadmap", "save", "--team", "small", "--budget", "low", "--period", "3months")
	expectContains(t, "Step 5", out, "small_low_3months")
	out = c.mustRun("Step 5", "roadmap", "list")
	expectContains(t, "Step 5", out, "3months")
}

func TestRoadmapPlanIsOffline(t *testing.T) {
	// Nothing listens here; plan must not need the server
	c := newCLI(t, "http://127.0.0.1:1")

	out := c.mustRun("Step 1", "roadmap", "plan")
	expectContains(t, "Step 1", out, "solo_zero_1month")
	expectContains(t, "Step 1", out, "0 KRW")
	expectContains(t, "Step 1", out, "Week 4")

	out = c.mustRun("Step 2", "roadmap", "plan", "--budget", "mid")
	expectContains(t, "Step 2", out, "1,000,000 KRW")

	if _, err := c.run("roadmap", "plan", "--team", "huge"); err == nil {
		t.Error("Step 3 - expected invalid answer error")
	}
}

func TestFeedListRejectsUnknownSort(t *testing.T) {
	// Rejected before any request is made
	c := newCLI(t, "http://127.0.0.1:1")

	_, err := c.run("feed", "list", "--sort", "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown sort") {
		t.Errorf("Expected unknown sort error, got %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgPath := filepath.Join(home, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("api_url: http://example.invalid:9\n"), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	a := &app{v: viper.New()}
	a.cfgFile = cfgPath
	if err := a.setup(context.Background(), true); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if got := a.client.BaseURL(); got != "http://example.invalid:9" {
		t.Errorf("Expected api_url from config file, got %s", got)
	}

	t.Setenv("ONEWAVE_API_URL", "http://from-env:1")
	b := &app{v: viper.New(), cfgFile: cfgPath}
	if err := b.setup(context.Background(), true); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if got := b.client.BaseURL(); got != "http://from-env:1" {
		t.Errorf("Expected env to override config file, got %s", got)
	}
	if got := b.v.GetString("token_file"); got != filepath.Join(home, ".onewave", "token") {
		t.Errorf("Unexpected default token file %s", got)
	}
}
