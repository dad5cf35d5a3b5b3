package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/strataapp/strata/internal/cli/formatter"
	"github.com/strataapp/strata/internal/domain"
)

func newOwnerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "owner",
		Short: "Manage owners",
	}

	cmd.AddCommand(
		newOwnerAddCmd(app),
		newOwnerListCmd(app),
	)

	return cmd
}

func newOwnerAddCmd(app *App) *cobra.Command {
	var name, tz string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			o := &domain.Owner{
				DisplayName: name,
				Timezone:    tz,
			}
			if err := app.Owners.Register(context.Background(), o); err != nil {
				return err
			}
			fmt.Printf("Registered owner %s (%s)\n", o.DisplayName, o.Timezone)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone (default UTC)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newOwnerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			owners, err := app.Owners.List(context.Background())
			if err != nil {
				return err
			}
			if len(owners) == 0 {
				fmt.Println("No owners registered.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatOwnerList(owners))
			return nil
		},
	}
}
