package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strataapp/strata/internal/cli/formatter"
)

func newReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review derived history: streaks, goal pace, audit trail",
	}

	cmd.AddCommand(
		newReviewStreakCmd(app),
		newReviewGoalCmd(app),
		newReviewHistoryCmd(app),
	)

	return cmd
}

func newReviewStreakCmd(app *App) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the current completion streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			state, err := app.Review.GetStreak(ctx, ownerID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatStreak(state))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newReviewGoalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "goal GOAL_ID",
		Short: "Show a goal's snapshot history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snaps, err := app.Review.ListSnapshots(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("No snapshots yet. Snapshots are taken when a day closes.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatSnapshots(snaps))
			return nil
		},
	}
}

func newReviewHistoryCmd(app *App) *cobra.Command {
	var owner string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			events, err := app.Review.ListAudit(ctx, ownerID, limit)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No history yet.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatAudit(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
