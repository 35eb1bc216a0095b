// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/onewave/teams"
)

func (a *app) applicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"apps"},
		Short:   "Review applications to your ideas",
	}

	list := &cobra.Command{
		Use:   "list <feedId>",
		Short: "List applications to a feed you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.loadBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer board.Close()
			printApplications(cmd.OutOrStdout(), board.Applications())
			return nil
		},
	}

	cmd.AddCommand(list, a.decideCmd("approve"), a.decideCmd("reject"))
	return cmd
}

func (a *app) decideCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <feedId> <applicationId>",
		Short: "Mark a pending application " + action + "d",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appID, err := parseID(args[1], "application id")
			if err != nil {
				return err
			}
			board, err := a.loadBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer board.Close()

			decide := board.Approve
			if action == "reject" {
				decide = board.Reject
			}
			decided, err := decide(cmd.Context(), appID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Application #%d from %s is now %s\n", decided.ApplicationID, decided.ApplicantName, decided.Status)
			return nil
		},
	}
}

func (a *app) loadBoard(ctx context.Context, feedArg string) (*teams.Board, error) {
	if err := a.requireLogin(); err != nil {
		return nil, err
	}
	feedID, err := parseID(feedArg, "feed id")
	if err != nil {
		return nil, err
	}
	board := teams.NewBoard(feedID, a.client)
	if err := board.Load(ctx); err != nil {
		return nil, err
	}
	return board, nil
}
