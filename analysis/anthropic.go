// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/onewave/cliparse"
)

const (
	anthropicVersion = "2023-06-01"

	// DefaultRequestTimeout bounds one Messages API call
	DefaultRequestTimeout = 60 * time.Second
)

var ErrMalformedReply = errors.New("malformed analysis reply")

// AnthropicScorer scores ideas with the Anthropic Messages API
type AnthropicScorer struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *anthropicError    `json:"error,omitempty"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// scoreReply is the JSON object the model is asked to return
type scoreReply struct {
	MarketScore      *int   `json:"marketScore"`
	InnovationScore  *int   `json:"innovationScore"`
	FeasibilityScore *int   `json:"feasibilityScore"`
	TotalScore       *int   `json:"totalScore"`
	Strength1        string `json:"strength1"`
	Strength2        string `json:"strength2"`
	Improvements1    string `json:"improvements1"`
	Improvements2    string `json:"improvements2"`
}

// NewAnthropicScorer creates a scorer. Empty model and endpoint fall back to
// the cliparse defaults.
func NewAnthropicScorer(apiKey, model, endpoint string) *AnthropicScorer {
	if model == "" {
		model = cliparse.DefaultAnthropicModel
	}
	if endpoint == "" {
		endpoint = cliparse.DefaultAnthropicURL
	}
	return &AnthropicScorer{
		apiKey:     apiKey,
		model:      model,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultRequestTimeout},
	}
}

func (a *AnthropicScorer) Name() string { return "anthropic" }

// Score asks the model for a strict JSON verdict on the idea
func (a *AnthropicScorer) Score(ctx context.Context, in Input) (Result, error) {
	reqBody := anthropicRequest{
		Model:     a.model,
		MaxTokens: 800,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildPrompt(in)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to call Anthropic API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Error("anthropic API error", "status", resp.StatusCode, "body", string(body))
		return Result{}, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return Result{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if apiResp.Error != nil {
		return Result{}, fmt.Errorf("API error: %s - %s", apiResp.Error.Type, apiResp.Error.Message)
	}

	if len(apiResp.Content) == 0 || apiResp.Content[0].Type != "text" {
		return Result{}, fmt.Errorf("unexpected response format")
	}

	return parseReply(apiResp.Content[0].Text)
}

func buildPrompt(in Input) string {
	return fmt.Sprintf(`You are a startup analyst evaluating an early-stage idea.

Score the idea from 0 to 100 on market potential, innovation and feasibility,
give an overall total score, two strengths and two improvements.

Title: %s
Category: %s
Stage: %s
Problem: %s
Target customer: %s
Solution: %s
Differentiation: %s

Respond with a single JSON object and nothing else:
{"marketScore": 0, "innovationScore": 0, "feasibilityScore": 0, "totalScore": 0,
 "strength1": "", "strength2": "", "improvements1": "", "improvements2": ""}`,
		in.Title, in.Category.Label(), in.Stage, in.Problem, in.TargetCustomer, in.Solution, in.Differentiation)
}

// parseReply extracts the first JSON object from the model text
func parseReply(text string) (Result, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Result{}, ErrMalformedReply
	}

	var reply scoreReply
	if err := json.Unmarshal([]byte(text[start:end+1]), &reply); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if reply.MarketScore == nil || reply.InnovationScore == nil || reply.FeasibilityScore == nil {
		return Result{}, fmt.Errorf("%w: missing sub-score", ErrMalformedReply)
	}

	r := Result{
		Market:       *reply.MarketScore,
		Innovation:   *reply.InnovationScore,
		Feasibility:  *reply.FeasibilityScore,
		Strength1:    strings.TrimSpace(reply.Strength1),
		Strength2:    strings.TrimSpace(reply.Strength2),
		Improvement1: strings.TrimSpace(reply.Improvements1),
		Improvement2: strings.TrimSpace(reply.Improvements2),
	}
	if reply.TotalScore != nil {
		r.Total = *reply.TotalScore
	}
	return Normalize(r, reply.TotalScore != nil), nil
}
