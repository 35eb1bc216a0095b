// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/onewave/roadmap"
)

func (a *app) roadmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roadmap",
		Short: "Pick a launch roadmap from four answers",
	}

	var answers roadmap.Answers
	bindAnswers := func(c *cobra.Command) {
		f := c.Flags()
		f.StringVar((*string)(&answers.TeamSize), "team", string(roadmap.TeamSolo), "solo, small or team")
		f.StringVar((*string)(&answers.Budget), "budget", string(roadmap.BudgetZero), "zero, low or mid")
		f.StringVar((*string)(&answers.Period), "period", string(roadmap.Period1Month), "1month, 3months or 6months")
		f.StringVar((*string)(&answers.Priority), "priority", string(roadmap.PriorityValidation), "validation, team or funding")
	}

	plan := &cobra.Command{
		Use:         "plan",
		Short:       "Print the roadmap for your answers without saving it",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOffline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := answers.Validate(); err != nil {
				return err
			}
			printPlan(cmd.OutOrStdout(), roadmap.Select(answers))
			return nil
		},
	}
	bindAnswers(plan)

	save := &cobra.Command{
		Use:   "save",
		Short: "Save your answers to your account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			if err := answers.Validate(); err != nil {
				return err
			}
			rm, err := a.client.CreateRoadmap(cmd.Context(), answers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Roadmap #%d saved (%s)\n", rm.RoadmapID, roadmap.CaseKey(answers))
			return nil
		},
	}
	bindAnswers(save)

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved roadmaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			roadmaps, err := a.client.ListRoadmaps(cmd.Context())
			if err != nil {
				return err
			}
			if len(roadmaps) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved roadmaps")
				return nil
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tTEAM\tBUDGET\tPERIOD\tPRIORITY\tSAVED")
			for _, rm := range roadmaps {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", rm.RoadmapID, rm.TeamSize, rm.Budget, rm.Timeline, rm.Priority, ago(rm.CreatedAt))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(plan, save, list)
	return cmd
}
