// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/onewave/cliparse"
)

func TestSlackNotifier_ApplicationReceived(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("Failed to decode webhook body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewSlackNotifier(srv.URL)
	err := n.ApplicationReceived(context.Background(), ApplicationEvent{
		FeedID:        3,
		ApplicationID: 9,
		IdeaTitle:     "Clinic queue app",
		ApplicantName: "Bob",
		Stack:         "Backend",
	})
	if err != nil {
		t.Fatalf("ApplicationReceived() error = %v", err)
	}

	text, _ := got["text"].(string)
	if !strings.Contains(text, "Bob") || !strings.Contains(text, "Clinic queue app") {
		t.Errorf("Expected fallback text to mention applicant and idea, got %q", text)
	}
	if blocks, _ := got["blocks"].([]any); len(blocks) != 2 {
		t.Errorf("Expected 2 blocks, got %v", got["blocks"])
	}
}

func TestSlackNotifier_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewSlackNotifier(srv.URL).ApplicationReceived(context.Background(), ApplicationEvent{})
	if err == nil {
		t.Error("Expected error for failing webhook")
	}
}

func TestSlackNotifier_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	start := time.Now()
	err := NewSlackNotifier(srv.URL, WithTimeout(50*time.Millisecond)).
		ApplicationReceived(context.Background(), ApplicationEvent{})
	if err == nil {
		t.Fatal("Expected error for hanging webhook")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Expected delivery to give up quickly, took %s", elapsed)
	}
}

func TestNewSlackNotifier_DefaultTimeout(t *testing.T) {
	n := NewSlackNotifier("http://hooks.example")
	if n.httpClient.Timeout != DefaultTimeout {
		t.Errorf("Expected timeout %s, got %s", DefaultTimeout, n.httpClient.Timeout)
	}
}

func TestFromConfig(t *testing.T) {
	if _, ok := FromConfig(cliparse.Config{}).(Nop); !ok {
		t.Error("Expected Nop notifier without webhook")
	}
	if _, ok := FromConfig(cliparse.Config{SlackWebhookURL: "http://hooks.example"}).(*SlackNotifier); !ok {
		t.Error("Expected SlackNotifier with webhook")
	}
}

func TestLogMailer(t *testing.T) {
	if err := (LogMailer{}).SendCode(context.Background(), "a@example.com", "signup", "123456"); err != nil {
		t.Errorf("SendCode() error = %v", err)
	}
}
