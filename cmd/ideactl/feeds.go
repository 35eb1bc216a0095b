// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/onewave/apiclient"
	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/reconcile"
)

func (a *app) feedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse and like published ideas",
	}
	cmd.AddCommand(a.feedListCmd(), a.feedShowCmd(), a.feedLikeCmd(true), a.feedLikeCmd(false))
	return cmd
}

func (a *app) feedListCmd() *cobra.Command {
	var category, sort, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published ideas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := models.Category(strings.ToUpper(category))
			if cat != "" && !cat.Valid() {
				return fmt.Errorf("unknown category %q", category)
			}
			if !reconcile.ValidSort(sort) {
				return fmt.Errorf("unknown sort %q (want recent, popular or score)", sort)
			}

			items, err := a.client.ListFeeds(cmd.Context(), apiclient.ListFeedsOptions{Category: cat})
			if err != nil {
				return err
			}

			list := reconcile.NewFeedList(items, a.client)
			printFeedList(cmd.OutOrStdout(), list.View(reconcile.Query{Category: cat, Search: search, Sort: sort}))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only this category, e.g. FINTECH")
	cmd.Flags().StringVar(&sort, "sort", reconcile.SortRecent, "recent, popular or score")
	cmd.Flags().StringVar(&search, "search", "", "filter by text in title, problem, author or category")
	return cmd
}

func (a *app) feedShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <feedId>",
		Short: "Show one published idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feedID, err := parseID(args[0], "feed id")
			if err != nil {
				return err
			}
			detail, err := a.client.GetFeed(cmd.Context(), feedID)
			if err != nil {
				return err
			}
			printFeedDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

// feedLikeCmd builds "like" or "unlike". Both go through reconcile.Vote so
// the CLI and interactive clients share one set of like rules.
func (a *app) feedLikeCmd(like bool) *cobra.Command {
	use, short := "like <feedId>", "Like an idea"
	if !like {
		use, short = "unlike <feedId>", "Remove your like"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			feedID, err := parseID(args[0], "feed id")
			if err != nil {
				return err
			}
			detail, err := a.client.GetFeed(cmd.Context(), feedID)
			if err != nil {
				return err
			}

			vote := reconcile.NewVote(args[0], reconcile.State{LikeCount: detail.LikeCount, LikedByMe: detail.LikedByMe}, a.client)
			out := cmd.OutOrStdout()
			switch {
			case like && detail.LikedByMe:
				fmt.Fprintln(out, "Already liked")
				return nil
			case !like && !vote.CanDownvote():
				fmt.Fprintln(out, "Not liked yet")
				return nil
			case like:
				err = vote.ToggleUpvote(cmd.Context())
			default:
				err = vote.ToggleDownvote(cmd.Context())
			}
			if err != nil {
				return err
			}

			s := vote.State()
			fmt.Fprintf(out, "%s now has %d likes\n", detail.Title, s.LikeCount)
			return nil
		},
	}
}

func (a *app) commentCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "comment <feedId> [text...]",
		Short: "Comment on an idea, or list comments with --list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feedID, err := parseID(args[0], "feed id")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if list {
				comments, err := a.client.ListComments(cmd.Context(), feedID)
				if err != nil {
					return err
				}
				for _, c := range comments {
					fmt.Fprintf(out, "%s (%s): %s\n", c.AuthorName, ago(c.CreatedAt), c.Content)
				}
				return nil
			}

			if err := a.requireLogin(); err != nil {
				return err
			}
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return errors.New("comment text is required")
			}
			c, err := a.client.CreateComment(cmd.Context(), feedID, text)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Comment #%d posted\n", c.CommentID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list comments instead of posting")
	return cmd
}

func (a *app) applyCmd() *cobra.Command {
	var stack string

	cmd := &cobra.Command{
		Use:   "apply <feedId>",
		Short: "Apply to join an idea's team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireLogin(); err != nil {
				return err
			}
			feedID, err := parseID(args[0], "feed id")
			if err != nil {
				return err
			}
			if stack == "" {
				return errors.New("--stack is required")
			}
			application, err := a.client.Apply(cmd.Context(), feedID, stack)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied as %s (application #%d, %s)\n", application.Stack, application.ApplicationID, application.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&stack, "stack", "", "position to apply for, e.g. Backend")
	return cmd
}
