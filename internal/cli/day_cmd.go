package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strataapp/strata/internal/cli/formatter"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Work with daily plans",
	}

	cmd.AddCommand(
		newDayStartCmd(app),
		newDayShowCmd(app),
		newDayCloseCmd(app),
	)

	return cmd
}

func newDayStartCmd(app *App) *cobra.Command {
	var owner, date string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Materialize the daily plan from the weekly grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			day, err := resolveDate(ctx, app, ownerID, date)
			if err != nil {
				return err
			}

			plan, err := app.Plans.MaterializeDay(ctx, ownerID, day)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatDailyPlan(plan, taskDescriptions(ctx, app, ownerID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newDayShowCmd(app *App) *cobra.Command {
	var owner, date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a daily plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			day, err := resolveDate(ctx, app, ownerID, date)
			if err != nil {
				return err
			}

			plan, err := app.Plans.GetDay(ctx, ownerID, day)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatDailyPlan(plan, taskDescriptions(ctx, app, ownerID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newDayCloseCmd(app *App) *cobra.Command {
	var owner, date string

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a day, freezing its outcomes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			day, err := resolveDate(ctx, app, ownerID, date)
			if err != nil {
				return err
			}

			if err := app.DayClose.CloseDay(ctx, ownerID, day); err != nil {
				return err
			}
			fmt.Printf("Closed %s\n", day.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
