package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/strataapp/strata/internal/cli/formatter"
	"github.com/strataapp/strata/internal/domain"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals and key results",
	}

	cmd.AddCommand(
		newGoalAddCmd(app),
		newGoalListCmd(app),
		newGoalInspectCmd(app),
		newGoalDeactivateCmd(app),
		newGoalKrCmd(app),
	)

	return cmd
}

func newGoalAddCmd(app *App) *cobra.Command {
	var owner, title, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			g := &domain.Goal{
				OwnerID:   ownerID,
				Title:     title,
				StartDate: startDate,
				EndDate:   endDate,
				Active:    true,
			}
			if err := app.Goals.CreateGoal(ctx, g); err != nil {
				return err
			}
			fmt.Printf("Created goal %s\n", g.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&title, "title", "", "Goal title")
	cmd.Flags().StringVar(&start, "start", "", "Horizon start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Horizon end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("owner")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			goals, err := app.Goals.ListGoals(ctx, ownerID)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println("No goals found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatGoalList(goals))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newGoalInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a goal with its key results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, err := app.Goals.GetGoal(ctx, args[0])
			if err != nil {
				return err
			}
			results, err := app.Goals.ListKeyResults(ctx, g.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatGoalDetail(g, results, app.Clock.Now()))
			return nil
		},
	}
}

func newGoalDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Goals.DeactivateGoal(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deactivated goal %s\n", args[0])
			return nil
		},
	}
}

func newGoalKrCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kr",
		Short: "Manage key results",
	}

	cmd.AddCommand(
		newGoalKrAddCmd(app),
		newGoalKrProgressCmd(app),
	)

	return cmd
}

func newGoalKrAddCmd(app *App) *cobra.Command {
	var title string
	var target float64

	cmd := &cobra.Command{
		Use:   "add GOAL_ID",
		Short: "Add a key result to a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kr := &domain.KeyResult{
				GoalID: args[0],
				Title:  title,
				Target: target,
			}
			if err := app.Goals.AddKeyResult(context.Background(), kr); err != nil {
				return err
			}
			fmt.Printf("Added key result %s\n", kr.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Key result title")
	cmd.Flags().Float64Var(&target, "target", 0, "Target value")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newGoalKrProgressCmd(app *App) *cobra.Command {
	var current float64

	cmd := &cobra.Command{
		Use:   "progress KR_ID",
		Short: "Record a key result's current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Goals.UpdateProgress(context.Background(), args[0], current); err != nil {
				return err
			}
			fmt.Printf("Recorded progress %.1f\n", current)
			return nil
		},
	}

	cmd.Flags().Float64Var(&current, "current", 0, "Current value")
	_ = cmd.MarkFlagRequired("current")

	return cmd
}
