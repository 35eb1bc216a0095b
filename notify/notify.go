// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/onewave/cliparse"
	"github.com/slack-go/slack"
)

// Mailer delivers verification codes
type Mailer interface {
	SendCode(ctx context.Context, email, purpose, code string) error
}

// LogMailer writes verification codes to the structured log instead of
// sending mail. Useful in development and as the default.
type LogMailer struct{}

func (LogMailer) SendCode(ctx context.Context, email, purpose, code string) error {
	slog.InfoContext(ctx, "verification code issued",
		"email", email,
		"purpose", purpose,
		"code", code,
	)
	return nil
}

// ApplicationEvent describes a new team application
type ApplicationEvent struct {
	FeedID        int64
	ApplicationID int64
	IdeaTitle     string
	ApplicantName string
	Stack         string
}

// Notifier announces workflow events to the team
type Notifier interface {
	ApplicationReceived(ctx context.Context, ev ApplicationEvent) error
}

// Nop discards all events
type Nop struct{}

func (Nop) ApplicationReceived(context.Context, ApplicationEvent) error { return nil }

// DefaultTimeout bounds one webhook delivery
const DefaultTimeout = 5 * time.Second

// SlackNotifier posts events to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

type SlackOption func(*SlackNotifier)

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) SlackOption {
	return func(s *SlackNotifier) {
		s.httpClient.Timeout = d
	}
}

func NewSlackNotifier(webhookURL string, opts ...SlackOption) *SlackNotifier {
	s := &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig returns a SlackNotifier when a webhook is configured, otherwise Nop
func FromConfig(cfg cliparse.Config) Notifier {
	if cfg.SlackWebhookURL == "" {
		return Nop{}
	}
	return NewSlackNotifier(cfg.SlackWebhookURL)
}

func (s *SlackNotifier) ApplicationReceived(ctx context.Context, ev ApplicationEvent) error {
	text := fmt.Sprintf("*%s* applied to *%s* as `%s`", ev.ApplicantName, ev.IdeaTitle, ev.Stack)
	section := slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil)
	meta := slack.NewContextBlock("",
		slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("feed %d · application %d", ev.FeedID, ev.ApplicationID), false, false),
	)

	msg := &slack.WebhookMessage{
		Text:   fmt.Sprintf("%s applied to %s as %s", ev.ApplicantName, ev.IdeaTitle, ev.Stack),
		Blocks: &slack.Blocks{BlockSet: []slack.Block{section, meta}},
	}

	if err := slack.PostWebhookCustomHTTPContext(ctx, s.webhookURL, s.httpClient, msg); err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}
	return nil
}
