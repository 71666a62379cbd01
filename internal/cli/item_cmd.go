package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/danvoss/stride/internal/cli/formatter"
	"github.com/danvoss/stride/internal/domain"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage phase items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
	)

	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var name, phaseRef, packageRef string
	var quantity int
	var hoursEach float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to a phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			phaseID, err := resolvePhaseID(ctx, app, phaseRef, packageRef)
			if err != nil {
				return err
			}

			i := &domain.Item{
				ID:                 uuid.New().String(),
				PhaseID:            phaseID,
				Name:               name,
				Quantity:           quantity,
				EstimatedHoursEach: hoursEach,
			}

			if err := app.Items.Create(ctx, i); err != nil {
				return err
			}

			p, err := app.Phases.GetByID(ctx, phaseID)
			if err != nil {
				return err
			}
			fmt.Printf("Added item %s (%dx %s)\n", i.Name, i.Quantity, formatter.FormatHours(i.EstimatedHoursEach))
			fmt.Printf("Phase %s now %s over %s\n", p.Name,
				formatter.FormatHours(p.TotalEstimatedHours), formatter.FormatDays(p.PhaseTotalDuration))
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseRef, "phase", "", "Phase ID (or position with --package)")
	cmd.Flags().StringVar(&packageRef, "package", "", "Work package context for position numbers")
	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "Quantity")
	cmd.Flags().Float64Var(&hoursEach, "hours", 0, "Estimated hours per unit")
	_ = cmd.MarkFlagRequired("phase")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var phaseRef, packageRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items of a phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			phaseID, err := resolvePhaseID(ctx, app, phaseRef, packageRef)
			if err != nil {
				return err
			}

			items, err := app.Items.ListByPhase(ctx, phaseID)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No items found.")
				return nil
			}

			headers := []string{"ID", "NAME", "QTY", "HOURS EACH", "TOTAL"}
			rows := make([][]string, 0, len(items))
			for _, i := range items {
				rows = append(rows, []string{
					formatter.TruncID(i.ID),
					formatter.Bold(i.Name),
					fmt.Sprintf("%d", i.Quantity),
					formatter.FormatHours(i.EstimatedHoursEach),
					formatter.FormatHours(i.Hours()),
				})
			}

			fmt.Printf("%s\n", formatter.RenderBox("Items", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&phaseRef, "phase", "", "Phase ID (or position with --package)")
	cmd.Flags().StringVar(&packageRef, "package", "", "Work package context for position numbers")
	_ = cmd.MarkFlagRequired("phase")

	return cmd
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var name string
	var quantity int
	var hoursEach float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			i, err := app.Items.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				i.Name = name
			}
			if cmd.Flags().Changed("quantity") {
				i.Quantity = quantity
			}
			if cmd.Flags().Changed("hours") {
				i.EstimatedHoursEach = hoursEach
			}

			if err := app.Items.Update(ctx, i); err != nil {
				return err
			}

			p, err := app.Phases.GetByID(ctx, i.PhaseID)
			if err != nil {
				return err
			}
			fmt.Printf("Updated item %s\n", i.Name)
			fmt.Printf("Phase %s now %s over %s\n", p.Name,
				formatter.FormatHours(p.TotalEstimatedHours), formatter.FormatDays(p.PhaseTotalDuration))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Item name")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity")
	cmd.Flags().Float64Var(&hoursEach, "hours", 0, "Estimated hours per unit")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Items.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed item %s\n", args[0])
			return nil
		},
	}
}
