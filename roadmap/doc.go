// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package roadmap maps a questionnaire answer to a canned multi-week plan.

# Selection

	plan := roadmap.Select(roadmap.Answers{
		TeamSize: roadmap.TeamSolo,
		Budget:   roadmap.BudgetZero,
		Period:   roadmap.Period1Month,
		Priority: roadmap.PriorityValidation,
	})

The case key is teamSize_budget_period. Keys with an authored plan return it
directly; every other key starts from the solo/zero/1month plan and adjusts
the title and description for team size, the total cost for budget, and the
period named in the description.

Priority is validated but does not affect the plan.

Select is deterministic and allocates a fresh Plan on every call, so callers
may mutate the result freely.
*/
package roadmap
