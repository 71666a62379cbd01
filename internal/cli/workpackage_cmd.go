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
)

func resolveWorkPackageID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("work package ID is required")
	}

	packages, err := app.WorkPackages.List(ctx, true)
	if err != nil {
		return "", err
	}

	// 1. Exact short ID match (case-insensitive)
	for _, w := range packages {
		if strings.EqualFold(w.ShortID, input) {
			return w.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, w := range packages {
		if w.ID == input {
			return w.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, w := range packages {
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("work package not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("work package ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newWorkPackageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "package",
		Aliases: []string{"wp"},
		Short:   "Manage work packages",
	}

	cmd.AddCommand(
		newWorkPackageAddCmd(app),
		newWorkPackageListCmd(app),
		newWorkPackageInspectCmd(app),
		newWorkPackageUpdateCmd(app),
		newWorkPackageSetStartCmd(app),
		newWorkPackageRescheduleCmd(app),
		newWorkPackageArchiveCmd(app),
		newWorkPackageRemoveCmd(app),
		newWorkPackageImportCmd(app),
	)

	return cmd
}

func newWorkPackageAddCmd(app *App) *cobra.Command {
	var name, shortID, start, contactRef string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new work package",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			// No flags on an interactive terminal: collect via form.
			if shortID == "" && name == "" && app.IsInteractive != nil && app.IsInteractive() {
				if err := workPackageAddForm(&shortID, &name, &start).Run(); err != nil {
					return err
				}
			}

			w := &domain.WorkPackage{
				ID:        uuid.New().String(),
				ShortID:   strings.ToUpper(shortID),
				Name:      name,
				Status:    domain.WorkPackageActive,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			if start != "" {
				startDate, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				w.EffectiveStartDate = &startDate
			}

			if contactRef != "" {
				c, err := app.Contacts.GetByID(ctx, contactRef)
				if err != nil {
					return fmt.Errorf("resolving contact %q: %w", contactRef, err)
				}
				w.ContactID = &c.ID
			}

			if err := app.WorkPackages.Create(ctx, w); err != nil {
				return err
			}

			fmt.Printf("Created work package %s [%s]\n", w.Name, w.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-6 uppercase letters + 2-4 digits, e.g. ACME01)")
	cmd.Flags().StringVar(&name, "name", "", "Work package name")
	cmd.Flags().StringVar(&start, "start", "", "Effective start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&contactRef, "contact", "", "Contact ID to link")

	return cmd
}

func newWorkPackageListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work packages",
		RunE: func(cmd *cobra.Command, args []string) error {
			packages, err := app.WorkPackages.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(packages) == 0 {
				fmt.Println("No work packages found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatWorkPackageList(packages))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived work packages")

	return cmd
}

func newWorkPackageInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show work package details and timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.WorkPackages.GetByID(ctx, id)
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByWorkPackage(ctx, id)
			if err != nil {
				return err
			}

			data := formatter.WorkPackageInspectData{
				WorkPackage: w,
				Phases:      phases,
				Items:       make(map[string][]*domain.Item),
			}
			if w.ContactID != nil {
				if c, err := app.Contacts.GetByID(ctx, *w.ContactID); err == nil {
					data.Contact = c
				}
			}
			for _, p := range phases {
				if items, err := app.Items.ListByPhase(ctx, p.ID); err == nil && len(items) > 0 {
					data.Items[p.ID] = items
				}
			}

			fmt.Printf("%s\n", formatter.FormatWorkPackageInspect(data))
			return nil
		},
	}
}

func newWorkPackageUpdateCmd(app *App) *cobra.Command {
	var name, shortID, contactRef string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a work package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err := app.WorkPackages.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("id") {
				w.ShortID = strings.ToUpper(shortID)
			}
			if cmd.Flags().Changed("name") {
				w.Name = name
			}
			if cmd.Flags().Changed("contact") {
				if contactRef == "" {
					w.ContactID = nil
				} else {
					c, err := app.Contacts.GetByID(ctx, contactRef)
					if err != nil {
						return fmt.Errorf("resolving contact %q: %w", contactRef, err)
					}
					w.ContactID = &c.ID
				}
			}
			w.UpdatedAt = time.Now()

			if err := app.WorkPackages.Update(ctx, w); err != nil {
				return err
			}

			fmt.Printf("Updated work package %s [%s]\n", w.Name, w.ShortID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shortID, "id", "", "Short ID (2-6 uppercase letters + 2-4 digits)")
	cmd.Flags().StringVar(&name, "name", "", "Work package name")
	cmd.Flags().StringVar(&contactRef, "contact", "", "Contact ID to link (empty to unlink)")

	return cmd
}

func newWorkPackageSetStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-start ID DATE",
		Short: "Set the effective start date and cascade the timeline",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			date, err := time.Parse("2006-01-02", args[1])
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", args[1], err)
			}

			phases, err := app.WorkPackages.SetEffectiveStartDate(ctx, id, date)
			if err != nil {
				return err
			}

			fmt.Printf("Anchored timeline at %s (%d phases rescheduled)\n", args[1], len(phases))
			return nil
		},
	}
}

func newWorkPackageRescheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule ID",
		Short: "Recompute durations from items and rebuild the timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}

			phases, err := app.Phases.Reschedule(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("Rescheduled %d phases\n", len(phases))
			fmt.Printf("%s\n", formatter.FormatPhaseTimeline(phases))
			return nil
		},
	}
}

func newWorkPackageArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive ID",
		Short: "Archive a work package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkPackages.Archive(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Archived work package %s\n", id)
			return nil
		},
	}
}

func newWorkPackageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a work package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveWorkPackageID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.WorkPackages.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed work package %s\n", id)
			return nil
		},
	}
}

func newWorkPackageImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a work package from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportWorkPackage(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatImportAccepted(result))
			return nil
		},
	}
}
