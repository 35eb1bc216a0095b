// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/danielhkuo/onewave/analysis"
	"github.com/danielhkuo/onewave/notify"
	"github.com/danielhkuo/onewave/testutil"
)

// serve runs a handler against a request and returns the recorder
func serve(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// authed builds a request for userID with alternating path name/value pairs
func authed(method, path string, body interface{}, userID int64, pathValues ...string) *http.Request {
	req := testutil.MakeRequest(method, path, body, nil)
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	if userID != 0 {
		req = testutil.AsUser(req, userID)
	}
	return req
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// recordingMailer keeps the last code per email and purpose
type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{codes: make(map[string]string)}
}

func (m *recordingMailer) SendCode(_ context.Context, email, purpose, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email+"/"+purpose] = code
	m.sent++
	return nil
}

func (m *recordingMailer) code(email, purpose string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email+"/"+purpose]
}

func (m *recordingMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

// recordingNotifier captures application events
type recordingNotifier struct {
	mu          sync.Mutex
	events      []notify.ApplicationEvent
	err         error
	hasDeadline bool
}

func (n *recordingNotifier) ApplicationReceived(ctx context.Context, ev notify.ApplicationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	_, n.hasDeadline = ctx.Deadline()
	return n.err
}

// fixedScorer returns the same result every call
type fixedScorer struct {
	result analysis.Result
	err    error
	calls  int
}

func (s *fixedScorer) Name() string { return "fixed" }

func (s *fixedScorer) Score(context.Context, analysis.Input) (analysis.Result, error) {
	s.calls++
	return s.result, s.err
}

var errScorerDown = errors.New("scorer unavailable")
