// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/models"
	"github.com/google/go-cmp/cmp"
)

func sampleInput() Input {
	return Input{
		Title:           "Clinic queue app",
		Problem:         "Patients wait hours at walk-in clinics without knowing when they will be seen.",
		TargetCustomer:  "Small neighbourhood clinics and their patients.",
		Solution:        "A web queue that texts patients when their turn approaches.",
		Differentiation: "No app install and works with existing reception workflows.",
		Category:        models.CategoryHealthcare,
		Stage:           models.StagePrototype,
	}
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name      string
		in        Result
		haveTotal bool
		want      Result
	}{
		{
			name:      "clamps out of range",
			in:        Result{Market: -5, Innovation: 140, Feasibility: 50, Total: 101},
			haveTotal: true,
			want:      Result{Market: 0, Innovation: 100, Feasibility: 50, Total: 100},
		},
		{
			name:      "missing total is rounded mean",
			in:        Result{Market: 70, Innovation: 80, Feasibility: 81},
			haveTotal: false,
			want:      Result{Market: 70, Innovation: 80, Feasibility: 81, Total: 77},
		},
		{
			name:      "mean uses clamped values",
			in:        Result{Market: 300, Innovation: 100, Feasibility: 100},
			haveTotal: false,
			want:      Result{Market: 100, Innovation: 100, Feasibility: 100, Total: 100},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.in, tc.haveTotal)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeuristicScorer_Deterministic(t *testing.T) {
	s := HeuristicScorer{}
	first, err := s.Score(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	second, err := s.Score(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Score() not deterministic (-first +second):\n%s", diff)
	}

	for name, v := range map[string]int{
		"market": first.Market, "innovation": first.Innovation,
		"feasibility": first.Feasibility, "total": first.Total,
	} {
		if v < 0 || v > 100 {
			t.Errorf("%s score %d out of range", name, v)
		}
	}
	if first.Strength1 == "" || first.Strength2 == "" || first.Improvement1 == "" || first.Improvement2 == "" {
		t.Errorf("Expected all feedback fields to be set, got %+v", first)
	}
}

func TestHeuristicScorer_StageRaisesFeasibility(t *testing.T) {
	s := HeuristicScorer{}
	in := sampleInput()

	in.Stage = models.StageIdea
	early, _ := s.Score(context.Background(), in)
	in.Stage = models.StageLaunched
	late, _ := s.Score(context.Background(), in)

	if late.Feasibility <= early.Feasibility {
		t.Errorf("Expected launched feasibility (%d) > idea feasibility (%d)", late.Feasibility, early.Feasibility)
	}
}

func TestHeuristicScorer_EmptyInput(t *testing.T) {
	r, err := HeuristicScorer{}.Score(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if r.Market != 20 || r.Innovation != 20 || r.Feasibility != 16 {
		t.Errorf("Unexpected floor scores: %+v", r)
	}
}

func TestHeuristicScorer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (HeuristicScorer{}).Score(ctx, sampleInput()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func anthropicServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key header, got %q", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") != anthropicVersion {
			t.Errorf("Expected anthropic-version header, got %q", r.Header.Get("anthropic-version"))
		}

		var req anthropicRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("Expected model test-model, got %s", req.Model)
		}
		if len(req.Messages) != 1 || !strings.Contains(req.Messages[0].Content, "Clinic queue app") {
			t.Errorf("Expected prompt to contain the idea title")
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: text}},
		})
	}))
}

func TestAnthropicScorer_Score(t *testing.T) {
	reply := "Here is my assessment:\n" +
		`{"marketScore": 82, "innovationScore": 64, "feasibilityScore": 71, "totalScore": 73,` +
		` "strength1": "Clear pain", "strength2": "Simple UX", "improvements1": "Pricing", "improvements2": "Moat"}` +
		"\nGood luck!"
	srv := anthropicServer(t, http.StatusOK, reply)
	defer srv.Close()

	s := NewAnthropicScorer("test-key", "test-model", srv.URL)
	got, err := s.Score(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	want := Result{
		Market: 82, Innovation: 64, Feasibility: 71, Total: 73,
		Strength1: "Clear pain", Strength2: "Simple UX",
		Improvement1: "Pricing", Improvement2: "Moat",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Score() mismatch (-want +got):\n%s", diff)
	}
}

func TestAnthropicScorer_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		text   string
	}{
		{"non-200 status", http.StatusInternalServerError, "{}"},
		{"no JSON object", http.StatusOK, "I cannot score this."},
		{"missing sub-score", http.StatusOK, `{"marketScore": 10, "innovationScore": 20}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := anthropicServer(t, tc.status, tc.text)
			defer srv.Close()

			_, err := NewAnthropicScorer("test-key", "test-model", srv.URL).Score(context.Background(), sampleInput())
			if err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestAnthropicScorer_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	s := NewAnthropicScorer("test-key", "test-model", srv.URL)
	if s.httpClient.Timeout != DefaultRequestTimeout {
		t.Errorf("Expected timeout %s, got %s", DefaultRequestTimeout, s.httpClient.Timeout)
	}
	s.httpClient.Timeout = 50 * time.Millisecond

	start := time.Now()
	if _, err := s.Score(context.Background(), sampleInput()); err == nil {
		t.Fatal("Expected error for hanging endpoint")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Expected Score to give up quickly, took %s", elapsed)
	}
}

func TestParseReply_MissingTotal(t *testing.T) {
	got, err := parseReply(`{"marketScore": 90, "innovationScore": 60, "feasibilityScore": 45}`)
	if err != nil {
		t.Fatalf("parseReply() error = %v", err)
	}
	if got.Total != 65 {
		t.Errorf("Expected total 65, got %d", got.Total)
	}
}

func TestFromConfig(t *testing.T) {
	if s := FromConfig(cliparse.Config{}); s.Name() != "heuristic" {
		t.Errorf("Expected heuristic scorer without key, got %s", s.Name())
	}
	if s := FromConfig(cliparse.Config{AnthropicKey: "k"}); s.Name() != "anthropic" {
		t.Errorf("Expected anthropic scorer with key, got %s", s.Name())
	}
}
