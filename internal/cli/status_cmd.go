package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danvoss/stride/internal/cli/formatter"
)

func newStatusCmd(app *App) *cobra.Command {
	var all bool
	var packageRef string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show work package schedule health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if packageRef != "" {
				id, err := resolveWorkPackageID(ctx, app, packageRef)
				if err != nil {
					return err
				}
				overview, err := app.Status.WorkPackageStatus(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n", formatter.FormatWorkPackageStatus(overview))
				return nil
			}

			overviews, err := app.Status.Overview(ctx, all)
			if err != nil {
				return err
			}
			if len(overviews) == 0 {
				fmt.Println("No work packages found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatOverview(overviews))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived work packages")
	cmd.Flags().StringVar(&packageRef, "package", "", "Scope to a single work package")

	return cmd
}
