package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/danvoss/stride/internal/cli/formatter"
	"github.com/danvoss/stride/internal/domain"
	"github.com/danvoss/stride/internal/schedule"
)

// resolvePhaseID resolves a phase identifier which can be:
//   - A position number (requires --package context)
//   - A UUID string or prefix
func resolvePhaseID(ctx context.Context, app *App, input string, packageRef string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("phase ID is required")
	}

	if packageRef != "" {
		packageID, err := resolveWorkPackageID(ctx, app, packageRef)
		if err != nil {
			return "", err
		}
		phases, err := app.Phases.ListByWorkPackage(ctx, packageID)
		if err != nil {
			return "", err
		}
		// Position match first, then UUID prefix within the package.
		for _, p := range phases {
			if fmt.Sprintf("%d", p.Position) == input {
				return p.ID, nil
			}
		}
		for _, p := range phases {
			if strings.HasPrefix(p.ID, input) {
				return p.ID, nil
			}
		}
		return "", fmt.Errorf("phase %q not found in work package %q", input, packageRef)
	}

	return input, nil
}

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage phases and their schedule",
	}

	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseListCmd(app),
		newPhaseStatusCmd(app),
		newPhaseEditCmd(app),
		newPhaseRecomputeCmd(app),
		newPhaseRemoveCmd(app),
	)

	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var name, packageRef string
	var position int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to a work package",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			packageID, err := resolveWorkPackageID(ctx, app, packageRef)
			if err != nil {
				return err
			}

			p := &domain.Phase{
				ID:            uuid.New().String(),
				WorkPackageID: packageID,
				Name:          name,
				Position:      position,
				Status:        domain.PhaseNotStarted,
			}

			if err := app.Phases.Create(ctx, p); err != nil {
				return err
			}

			fmt.Printf("Added phase %s at position %d\n", p.Name, p.Position)
			return nil
		},
	}

	cmd.Flags().StringVar(&packageRef, "package", "", "Work package ID")
	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().IntVar(&position, "position", 0, "Chain position (default: append)")
	_ = cmd.MarkFlagRequired("package")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	var packageRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List phases of a work package",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			packageID, err := resolveWorkPackageID(ctx, app, packageRef)
			if err != nil {
				return err
			}

			phases, err := app.Phases.ListByWorkPackage(ctx, packageID)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Println("No phases found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.RenderBox("", formatter.FormatPhaseTimeline(phases)))
			return nil
		},
	}

	cmd.Flags().StringVar(&packageRef, "package", "", "Work package ID")
	_ = cmd.MarkFlagRequired("package")

	return cmd
}

func newPhaseStatusCmd(app *App) *cobra.Command {
	var packageRef string

	cmd := &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Transition a phase's status (not_started|in_progress|completed)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			phaseID, err := resolvePhaseID(ctx, app, args[0], packageRef)
			if err != nil {
				return err
			}

			p, err := app.Phases.ApplyStatus(ctx, phaseID, domain.PhaseStatus(args[1]))
			if err != nil {
				return err
			}

			fmt.Printf("Phase %s is now %s\n", p.Name, formatter.PhaseStatusPill(p.Status))
			if p.ActualStartDate != nil {
				fmt.Printf("  actual start: %s\n", p.ActualStartDate.Format("2006-01-02"))
			}
			if p.ActualEndDate != nil {
				fmt.Printf("  actual end:   %s\n", p.ActualEndDate.Format("2006-01-02"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&packageRef, "package", "", "Work package context for position numbers")

	return cmd
}

func newPhaseEditCmd(app *App) *cobra.Command {
	var packageRef string
	var estStart, estEnd, actStart, actEnd string
	var duration int

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit phase dates or duration, cascading later phases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			phaseID, err := resolvePhaseID(ctx, app, args[0], packageRef)
			if err != nil {
				return err
			}

			var patch schedule.DatePatch

			if cmd.Flags().Changed("start") {
				d, err := parseFlagDate("start", estStart)
				if err != nil {
					return err
				}
				patch.EstimatedStartDate = d
			}
			if cmd.Flags().Changed("end") {
				d, err := parseFlagDate("end", estEnd)
				if err != nil {
					return err
				}
				patch.EstimatedEndDate = d
			}
			if cmd.Flags().Changed("duration") {
				patch.PhaseTotalDuration = &duration
			}
			if cmd.Flags().Changed("actual-start") {
				d, err := parseFlagDate("actual-start", actStart)
				if err != nil {
					return err
				}
				patch.ActualStartDate = d
			}
			if cmd.Flags().Changed("actual-end") {
				d, err := parseFlagDate("actual-end", actEnd)
				if err != nil {
					return err
				}
				patch.ActualEndDate = d
			}

			p, err := app.Phases.ApplyDateEdit(ctx, phaseID, patch)
			if err != nil {
				return err
			}

			fmt.Printf("Updated phase %s\n", p.Name)
			phases, err := app.Phases.ListByWorkPackage(ctx, p.WorkPackageID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.RenderBox("", formatter.FormatPhaseTimeline(phases)))
			return nil
		},
	}

	cmd.Flags().StringVar(&packageRef, "package", "", "Work package context for position numbers")
	cmd.Flags().StringVar(&estStart, "start", "", "Estimated start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&estEnd, "end", "", "Estimated end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&duration, "duration", 0, "Phase duration in whole days")
	cmd.Flags().StringVar(&actStart, "actual-start", "", "Actual start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&actEnd, "actual-end", "", "Actual end date (YYYY-MM-DD)")

	return cmd
}

func newPhaseRecomputeCmd(app *App) *cobra.Command {
	var packageRef string
	var hours float64

	cmd := &cobra.Command{
		Use:   "recompute [ID]",
		Short: "Recompute phase durations from item effort",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// No phase argument: recompute every phase of the package.
			if len(args) == 0 {
				packageID, err := resolveWorkPackageID(ctx, app, packageRef)
				if err != nil {
					return err
				}
				phases, err := app.Phases.RecomputeAll(ctx, packageID)
				if err != nil {
					return err
				}
				fmt.Printf("Recomputed %d phases\n", len(phases))
				return nil
			}

			phaseID, err := resolvePhaseID(ctx, app, args[0], packageRef)
			if err != nil {
				return err
			}
			var override *float64
			if cmd.Flags().Changed("hours") {
				override = &hours
			}
			p, err := app.Phases.RecomputePhase(ctx, phaseID, override)
			if err != nil {
				return err
			}
			fmt.Printf("Phase %s: %s over %s\n", p.Name,
				formatter.FormatHours(p.TotalEstimatedHours), formatter.FormatDays(p.PhaseTotalDuration))
			return nil
		},
	}

	cmd.Flags().StringVar(&packageRef, "package", "", "Work package ID")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Override total estimated hours instead of summing items")

	return cmd
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	var packageRef string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			phaseID, err := resolvePhaseID(ctx, app, args[0], packageRef)
			if err != nil {
				return err
			}
			if err := app.Phases.Delete(ctx, phaseID); err != nil {
				return err
			}
			fmt.Printf("Removed phase %s\n", phaseID)
			return nil
		},
	}

	cmd.Flags().StringVar(&packageRef, "package", "", "Work package context for position numbers")

	return cmd
}

func parseFlagDate(flag, value string) (*time.Time, error) {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: %w", flag, value, err)
	}
	return &d, nil
}
