package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/strataapp/strata/internal/cli/formatter"
	"github.com/strataapp/strata/internal/domain"
)

func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Work with weekly intent grids",
	}

	cmd.AddCommand(
		newWeekSetCmd(app),
		newWeekShowCmd(app),
	)

	return cmd
}

var weekdayFlags = []struct {
	name string
	day  time.Weekday
}{
	{"mon", time.Monday},
	{"tue", time.Tuesday},
	{"wed", time.Wednesday},
	{"thu", time.Thursday},
	{"fri", time.Friday},
	{"sat", time.Saturday},
	{"sun", time.Sunday},
}

func newWeekSetCmd(app *App) *cobra.Command {
	var owner string
	var year, week int
	dayTasks := make(map[string]*string, len(weekdayFlags))

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Create or replace the weekly grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			if year == 0 || week == 0 {
				y, w := domain.ISOWeekOf(app.Clock.Now().UTC())
				if year == 0 {
					year = y
				}
				if week == 0 {
					week = w
				}
			}

			plan := &domain.WeeklyPlan{
				OwnerID: ownerID,
				Year:    year,
				Week:    week,
				Grid:    map[time.Weekday][]string{},
			}
			for _, wf := range weekdayFlags {
				raw := *dayTasks[wf.name]
				if raw == "" {
					continue
				}
				var ids []string
				for _, ref := range strings.Split(raw, ",") {
					id, err := resolveTaskID(ctx, app, ownerID, strings.TrimSpace(ref))
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
				plan.Grid[wf.day] = ids
			}

			if err := app.Plans.UpsertWeek(ctx, plan); err != nil {
				return err
			}
			fmt.Printf("Saved week %d/%d\n", week, year)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().IntVar(&year, "year", 0, "ISO year (default current)")
	cmd.Flags().IntVar(&week, "week", 0, "ISO week (default current)")
	for _, wf := range weekdayFlags {
		s := new(string)
		dayTasks[wf.name] = s
		cmd.Flags().StringVar(s, wf.name, "", fmt.Sprintf("Comma-separated task IDs for %s", wf.day))
	}
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newWeekShowCmd(app *App) *cobra.Command {
	var owner string
	var year, week int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a weekly grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			if year == 0 || week == 0 {
				y, w := domain.ISOWeekOf(app.Clock.Now().UTC())
				if year == 0 {
					year = y
				}
				if week == 0 {
					week = w
				}
			}

			plan, err := app.Plans.GetWeek(ctx, ownerID, year, week)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatWeeklyPlan(plan, taskDescriptions(ctx, app, ownerID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().IntVar(&year, "year", 0, "ISO year (default current)")
	cmd.Flags().IntVar(&week, "week", 0, "ISO week (default current)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
