// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/onewave/models"
	"github.com/danielhkuo/onewave/roadmap"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func won(amount int) string {
	return humanize.Comma(int64(amount)) + " KRW"
}

func score(s *int) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *s)
}

func printFeedList(w io.Writer, items []models.FeedListItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No feeds found")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tAUTHOR\tSCORE\tLIKES\tCOMMENTS\tPOSTED")
	for _, item := range items {
		likes := humanize.Comma(int64(item.LikeCount))
		if item.LikedByMe {
			likes += "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			item.FeedID, item.Title, item.Category.Label(), item.AuthorName,
			score(item.TotalScore), likes, item.CommentCount, ago(item.CreatedAt))
	}
	tw.Flush()
}

func printFeedDetail(w io.Writer, d *models.FeedDetailResponse) {
	fmt.Fprintf(w, "%s  (#%d, %s, %s)\n", d.Title, d.FeedID, d.Category.Label(), d.Stage)
	fmt.Fprintf(w, "by %s, %s\n\n", d.AuthorName, ago(d.CreatedAt))
	fmt.Fprintf(w, "Problem:          %s\n", d.Problem)
	fmt.Fprintf(w, "Target customer:  %s\n", d.TargetCustomer)
	fmt.Fprintf(w, "Solution:         %s\n", d.Solution)
	fmt.Fprintf(w, "Differentiation:  %s\n\n", d.Differentiation)

	if d.TotalScore != nil {
		fmt.Fprintf(w, "Scores: total %s, market %s, innovation %s, feasibility %s\n\n",
			score(d.TotalScore), score(d.MarketScore), score(d.InnovationScore), score(d.FeasibilityScore))
	}

	liked := ""
	if d.LikedByMe {
		liked = " (you liked this)"
	}
	fmt.Fprintf(w, "%s likes, %s comments%s\n", humanize.Comma(int64(d.LikeCount)), humanize.Comma(int64(d.CommentCount)), liked)

	if len(d.Positions) > 0 {
		fmt.Fprintln(w, "\nOpen positions:")
		tw := newTable(w)
		for _, p := range d.Positions {
			fmt.Fprintf(tw, "  %s\t%d/%d filled\t%d left\n", p.Stack, p.Filled, p.Capacity, p.Remaining)
		}
		tw.Flush()
	}
	if len(d.Members) > 0 {
		fmt.Fprintln(w, "\nTeam:")
		for _, m := range d.Members {
			if m.Stack != "" {
				fmt.Fprintf(w, "  %s (%s, %s)\n", m.Name, m.Role, m.Stack)
			} else {
				fmt.Fprintf(w, "  %s (%s)\n", m.Name, m.Role)
			}
		}
	}
}

func printApplications(w io.Writer, apps []models.ApplicationResponse) {
	if len(apps) == 0 {
		fmt.Fprintln(w, "No applications yet")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tAPPLICANT\tSTACK\tSTATUS\tAPPLIED")
	for _, app := range apps {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", app.ApplicationID, app.ApplicantName, app.Stack, app.Status, ago(app.CreatedAt))
	}
	tw.Flush()
}

func printPlan(w io.Writer, p roadmap.Plan) {
	fmt.Fprintf(w, "%s [%s]\n%s\n", p.Title, p.CaseKey, p.Description)
	fmt.Fprintf(w, "Estimated total cost: %s\n", won(p.TotalCost))
	for _, week := range p.Weeks {
		fmt.Fprintf(w, "\nWeek %d: %s\n  Goal: %s\n", week.Week, week.Title, week.Goal)
		for _, day := range week.Days {
			for _, task := range day.Tasks {
				fmt.Fprintf(w, "  %-8s %s (%s)\n", day.Day, task.Title, task.Duration)
			}
		}
		if week.EstimatedCost > 0 {
			fmt.Fprintf(w, "  Cost: %s\n", won(week.EstimatedCost))
		}
	}
}

func printAnalysis(w io.Writer, a *models.AnalysisResponse) {
	fmt.Fprintf(w, "Total %d (market %d, innovation %d, feasibility %d), analyzed %s\n",
		a.TotalScore, a.MarketScore, a.InnovationScore, a.FeasibilityScore, ago(a.UpdatedAt))
	for _, s := range []string{a.Strength1, a.Strength2} {
		if s != "" {
			fmt.Fprintf(w, "  + %s\n", s)
		}
	}
	for _, s := range []string{a.Improvements1, a.Improvements2} {
		if s != "" {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
}
