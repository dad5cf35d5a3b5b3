package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strataapp/strata/internal/cli/formatter"
	"github.com/strataapp/strata/internal/domain"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the task backlog",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskRemoveCmd(app),
		newTaskDoneCmd(app),
		newTaskMissCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var owner, goalID, krID string

	cmd := &cobra.Command{
		Use:   "add DESCRIPTION",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			t := &domain.Task{
				OwnerID:     ownerID,
				Description: args[0],
			}
			if goalID != "" {
				t.GoalID = &goalID
			}
			if krID != "" {
				t.KeyResultID = &krID
			}

			if err := app.Tasks.Create(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Created task %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&goalID, "goal", "", "Goal ID to link")
	cmd.Flags().StringVar(&krID, "kr", "", "Key result ID to link")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}

			tasks, err := app.Tasks.ListByOwner(ctx, ownerID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var owner, description string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task's description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, ownerID, args[0])
			if err != nil {
				return err
			}

			t, err := app.Tasks.GetByID(ctx, taskID)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				t.Description = description
			}
			if err := app.Tasks.Update(ctx, t); err != nil {
				return err
			}
			fmt.Printf("Updated task %s\n", t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a task from the backlog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, ownerID, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Delete(ctx, taskID); err != nil {
				return err
			}
			fmt.Printf("Removed task %s\n", taskID)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	var owner, date string

	cmd := &cobra.Command{
		Use:   "done ID",
		Short: "Mark a planned task completed for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, ownerID, args[0])
			if err != nil {
				return err
			}
			day, err := resolveDate(ctx, app, ownerID, date)
			if err != nil {
				return err
			}
			if err := app.Tasks.CompleteTask(ctx, taskID, ownerID, day); err != nil {
				return err
			}
			fmt.Printf("Completed task %s on %s\n", taskID, day.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}

func newTaskMissCmd(app *App) *cobra.Command {
	var owner, date string

	cmd := &cobra.Command{
		Use:   "miss ID",
		Short: "Mark a planned task missed for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			ownerID, err := resolveOwnerID(ctx, app, owner)
			if err != nil {
				return err
			}
			taskID, err := resolveTaskID(ctx, app, ownerID, args[0])
			if err != nil {
				return err
			}
			day, err := resolveDate(ctx, app, ownerID, date)
			if err != nil {
				return err
			}
			if err := app.Tasks.MissTask(ctx, taskID, ownerID, day); err != nil {
				return err
			}
			fmt.Printf("Missed task %s on %s\n", taskID, day.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Owner name or ID")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
