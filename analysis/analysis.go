// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"context"
	"math"

	"github.com/danielhkuo/onewave/cliparse"
	"github.com/danielhkuo/onewave/models"
)

// Input is the idea content sent for scoring
type Input struct {
	Title           string
	Problem         string
	TargetCustomer  string
	Solution        string
	Differentiation string
	Category        models.Category
	Stage           models.Stage
}

// Result holds the scores and feedback for one analysis run
type Result struct {
	Market       int
	Innovation   int
	Feasibility  int
	Total        int
	Strength1    string
	Strength2    string
	Improvement1 string
	Improvement2 string
}

// Scorer produces an analysis for an idea
type Scorer interface {
	Score(ctx context.Context, in Input) (Result, error)
	Name() string
}

// FromConfig returns the Anthropic scorer when an API key is configured,
// otherwise the heuristic scorer.
func FromConfig(cfg cliparse.Config) Scorer {
	if cfg.AnthropicKey == "" {
		return HeuristicScorer{}
	}
	return NewAnthropicScorer(cfg.AnthropicKey, cfg.AnthropicModel, cfg.AnthropicURL)
}

// Normalize clamps every score to 0-100. When haveTotal is false the total
// becomes the rounded mean of the three sub-scores.
func Normalize(r Result, haveTotal bool) Result {
	r.Market = clamp(r.Market)
	r.Innovation = clamp(r.Innovation)
	r.Feasibility = clamp(r.Feasibility)
	if haveTotal {
		r.Total = clamp(r.Total)
	} else {
		mean := float64(r.Market+r.Innovation+r.Feasibility) / 3
		r.Total = int(math.Round(mean))
	}
	return r
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
