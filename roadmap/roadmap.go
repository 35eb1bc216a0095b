// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package roadmap

import (
	"errors"
	"fmt"
	"strings"
)

type TeamSize string

const (
	TeamSolo  TeamSize = "solo"
	TeamSmall TeamSize = "small"
	TeamLarge TeamSize = "team"
)

type Budget string

const (
	BudgetZero Budget = "zero"
	BudgetLow  Budget = "low"
	BudgetMid  Budget = "mid"
)

type Period string

const (
	Period1Month  Period = "1month"
	Period3Months Period = "3months"
	Period6Months Period = "6months"
)

type Priority string

const (
	PriorityValidation Priority = "validation"
	PriorityTeam       Priority = "team"
	PriorityFunding    Priority = "funding"
)

var ErrInvalidAnswer = errors.New("invalid roadmap answer")

// Answers is one completed questionnaire.
type Answers struct {
	TeamSize TeamSize `json:"teamSize"`
	Budget   Budget   `json:"budget"`
	Period   Period   `json:"period"`
	Priority Priority `json:"priority"`
}

// Validate checks every answer against its enumeration.
func (a Answers) Validate() error {
	switch a.TeamSize {
	case TeamSolo, TeamSmall, TeamLarge:
	default:
		return fmt.Errorf("%w: teamSize must be one of: solo, small, team", ErrInvalidAnswer)
	}
	switch a.Budget {
	case BudgetZero, BudgetLow, BudgetMid:
	default:
		return fmt.Errorf("%w: budget must be one of: zero, low, mid", ErrInvalidAnswer)
	}
	switch a.Period {
	case Period1Month, Period3Months, Period6Months:
	default:
		return fmt.Errorf("%w: period must be one of: 1month, 3months, 6months", ErrInvalidAnswer)
	}
	switch a.Priority {
	case PriorityValidation, PriorityTeam, PriorityFunding:
	default:
		return fmt.Errorf("%w: priority must be one of: validation, team, funding", ErrInvalidAnswer)
	}
	return nil
}

type Tool struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Task struct {
	Title       string `json:"title"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
	Tools       []Tool `json:"tools,omitempty"`
}

type Day struct {
	Day   string `json:"day"`
	Tasks []Task `json:"tasks"`
}

type Week struct {
	Week          int      `json:"week"`
	Title         string   `json:"title"`
	Goal          string   `json:"goal"`
	Days          []Day    `json:"days"`
	Summary       []string `json:"summary"`
	Tips          []string `json:"tips,omitempty"`
	EstimatedCost int      `json:"estimatedCost"`
}

// Plan is a multi-week roadmap. TotalCost is in KRW.
type Plan struct {
	ID          string `json:"id"`
	CaseKey     string `json:"caseKey"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Weeks       []Week `json:"weeks"`
	TotalCost   int    `json:"totalCost"`
}

// CaseKey joins team size, budget and period. Priority is not part of the key.
func CaseKey(a Answers) string {
	return string(a.TeamSize) + "_" + string(a.Budget) + "_" + string(a.Period)
}

// plans maps case keys to authored plans. Each entry builds a fresh value.
var plans = map[string]func() Plan{
	"solo_zero_1month": soloZeroOneMonth,
}

// Select returns the plan for a. Keys without an authored plan get the
// canonical solo plan adjusted per dimension. Select performs no I/O and
// never shares memory between results.
func Select(a Answers) Plan {
	key := CaseKey(a)
	if build, ok := plans[key]; ok {
		return build()
	}

	p := soloZeroOneMonth()

	switch a.TeamSize {
	case TeamSmall:
		p.Title = "Small Team Roadmap"
		p.Description = "A plan for a team of 2-3 to build an MVP efficiently."
	case TeamLarge:
		p.Title = "Team Startup Roadmap"
		p.Description = "A structured plan for a team of 4 or more to ship an MVP."
	}

	switch a.Budget {
	case BudgetLow:
		p.TotalCost = 100000
		p.Description += " (budget: up to 100,000 KRW)"
	case BudgetMid:
		p.TotalCost = 1000000
		p.Description += " (budget: up to 1,000,000 KRW)"
	}

	// Only the solo description names a period; team descriptions pass through.
	switch a.Period {
	case Period3Months:
		p.Description = strings.Replace(p.Description, "1 month", "3 months", 1)
	case Period6Months:
		p.Description = strings.Replace(p.Description, "1 month", "6 months", 1)
	}

	p.ID = key
	p.CaseKey = key
	return p
}
