package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSweepCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Close past open days and materialize today for every owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if watch {
				fmt.Println("Sweeping on an interval. Ctrl-C to stop.")
				return app.Sweeper.Run(ctx)
			}
			return app.Sweeper.SweepOnce(ctx)
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Keep sweeping on the configured interval")

	return cmd
}
