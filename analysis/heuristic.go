// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package analysis

import (
	"context"
	"sort"
	"unicode/utf8"

	"github.com/danielhkuo/onewave/models"
)

// HeuristicScorer scores ideas offline from field completeness, stage and
// category. The same input always yields the same result.
type HeuristicScorer struct{}

func (HeuristicScorer) Name() string { return "heuristic" }

var categoryBonus = map[models.Category]int{
	models.CategoryHealthcare: 8,
	models.CategorySaaS:       7,
	models.CategoryFintech:    6,
	models.CategoryEdutech:    4,
	models.CategoryEcommerce:  3,
	models.CategorySocial:     2,
}

var stageBonus = map[models.Stage]int{
	models.StagePrototype: 8,
	models.StageMVP:       14,
	models.StageLaunched:  20,
}

type axis struct {
	name        string
	score       int
	strength    string
	improvement string
}

func (HeuristicScorer) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	problem := fieldScore(in.Problem)
	target := fieldScore(in.TargetCustomer)
	solution := fieldScore(in.Solution)
	diff := fieldScore(in.Differentiation)

	axes := []axis{
		{
			name:        "market",
			score:       (problem+target)/2 + categoryBonus[in.Category],
			strength:    "The problem and target customer are clearly defined.",
			improvement: "Quantify the market: who pays, how many of them, and how often.",
		},
		{
			name:        "innovation",
			score:       (2*diff + solution) / 3,
			strength:    "The differentiation from existing alternatives is well articulated.",
			improvement: "Explain what makes the solution hard to copy compared with competitors.",
		},
		{
			name:        "feasibility",
			score:       solution*4/5 + stageBonus[in.Stage],
			strength:    "The solution is concrete and the current stage supports execution.",
			improvement: "Break the solution into a first buildable milestone and validate it.",
		},
	}

	r := Normalize(Result{
		Market:      axes[0].score,
		Innovation:  axes[1].score,
		Feasibility: axes[2].score,
	}, false)
	axes[0].score, axes[1].score, axes[2].score = r.Market, r.Innovation, r.Feasibility

	// Strongest first; ties keep declaration order
	sort.SliceStable(axes, func(i, j int) bool { return axes[i].score > axes[j].score })
	r.Strength1 = axes[0].strength
	r.Strength2 = axes[1].strength
	r.Improvement1 = axes[2].improvement
	r.Improvement2 = axes[1].improvement
	return r, nil
}

// fieldScore maps text length to 20-95, saturating at 250 characters
func fieldScore(s string) int {
	n := utf8.RuneCountInString(s)
	if n > 250 {
		n = 250
	}
	return 20 + n*75/250
}
