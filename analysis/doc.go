// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package analysis scores startup ideas.

	scorer := analysis.FromConfig(cfg)
	result, err := scorer.Score(ctx, analysis.Input{...})

# Scorers

AnthropicScorer calls the Messages API and expects a single JSON object with
marketScore, innovationScore, feasibilityScore, totalScore and four feedback
strings. Text around the object is ignored.

HeuristicScorer runs offline. It is used when ANTHROPIC_API_KEY is unset and
always returns the same result for the same input.

# Scores

All scores are integers in 0-100. Normalize clamps them and fills in a
missing total with the rounded mean of the three sub-scores.
*/
package analysis
