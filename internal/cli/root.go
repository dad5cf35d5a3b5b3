package cli

import (
	"github.com/spf13/cobra"
	"github.com/strataapp/strata/internal/clock"
	"github.com/strataapp/strata/internal/scheduler"
	"github.com/strataapp/strata/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Owners   service.OwnerService
	Tasks    service.TaskService
	Plans    service.PlanService
	DayClose service.DayCloseService
	Goals    service.GoalService
	Review   service.ReviewService
	Sweeper  *scheduler.Sweeper
	Clock    clock.Clock
}

// NewRootCmd creates the top-level "strata" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "strata",
		Short: "Layered daily planner: weekly intent, daily execution, closed truth",
	}

	root.AddCommand(
		newOwnerCmd(app),
		newTaskCmd(app),
		newDayCmd(app),
		newWeekCmd(app),
		newGoalCmd(app),
		newReviewCmd(app),
		newSweepCmd(app),
	)

	return root
}
