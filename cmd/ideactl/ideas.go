// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/onewave/models"
)

func (a *app) ideaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idea",
		Short: "Write, analyze and publish your ideas",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// cobra runs only the closest PersistentPreRunE
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.requireLogin()
		},
	}
	cmd.AddCommand(a.ideaCreateCmd(), a.ideaListCmd(), a.ideaAnalyzeCmd(), a.ideaPublishCmd())
	return cmd
}

func (a *app) ideaCreateCmd() *cobra.Command {
	var req models.IdeaCreateRequest
	var category, stage string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Save a new idea",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Category = models.Category(strings.ToUpper(category))
			req.Stage = models.Stage(strings.ToUpper(stage))
			idea, err := a.client.CreateIdea(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Idea #%d saved. Run `ideactl idea analyze %d` to score it.\n", idea.IdeaID, idea.IdeaID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Title, "title", "", "short title")
	f.StringVar(&req.Problem, "problem", "", "the problem being solved")
	f.StringVar(&req.TargetCustomer, "customer", "", "who has the problem")
	f.StringVar(&req.Solution, "solution", "", "how the idea solves it")
	f.StringVar(&req.Differentiation, "differentiation", "", "why it beats alternatives")
	f.StringVar(&category, "category", string(models.CategoryOther), "HEALTHCARE, FINTECH, EDUTECH, ECOMMERCE, SAAS, SOCIAL or OTHER")
	f.StringVar(&stage, "stage", string(models.StageIdea), "IDEA, PROTOTYPE, MVP or LAUNCHED")
	return cmd
}

func (a *app) ideaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ideas, err := a.client.ListIdeas(cmd.Context())
			if err != nil {
				return err
			}
			if len(ideas) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No ideas yet")
				return nil
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSTAGE\tCREATED")
			for _, idea := range ideas {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", idea.IdeaID, idea.Title, idea.Category.Label(), idea.Stage, ago(idea.CreatedAt))
			}
			return tw.Flush()
		},
	}
}

func (a *app) ideaAnalyzeCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "analyze <ideaId>",
		Short: "Score an idea, or show the last score with --show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ideaID, err := parseID(args[0], "idea id")
			if err != nil {
				return err
			}
			get := a.client.AnalyzeIdea
			if show {
				get = a.client.GetAnalysis
			}
			analysis, err := get(cmd.Context(), ideaID)
			if err != nil {
				return err
			}
			printAnalysis(cmd.OutOrStdout(), analysis)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "show the stored analysis without re-running it")
	return cmd
}

func (a *app) ideaPublishCmd() *cobra.Command {
	var positions map[string]int

	cmd := &cobra.Command{
		Use:   "publish <ideaId>",
		Short: "Publish an idea to the feed with open positions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ideaID, err := parseID(args[0], "idea id")
			if err != nil {
				return err
			}

			req := models.FeedCreateRequest{IdeaID: ideaID}
			stacks := make([]string, 0, len(positions))
			for stack := range positions {
				stacks = append(stacks, stack)
			}
			sort.Strings(stacks)
			for _, stack := range stacks {
				req.Positions = append(req.Positions, models.PositionRequest{Stack: stack, Capacity: positions[stack]})
			}

			detail, err := a.client.CreateFeed(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Published as feed #%d\n", detail.FeedID)
			return nil
		},
	}
	cmd.Flags().StringToIntVar(&positions, "position", nil, "open seats per stack, e.g. --position Backend=2,Design=1")
	return cmd
}
