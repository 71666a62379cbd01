package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/danvoss/stride/internal/cli/formatter"
	"github.com/danvoss/stride/internal/domain"
)

func newContactCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage pipeline contacts",
	}

	cmd.AddCommand(
		newContactAddCmd(app),
		newContactListCmd(app),
		newContactInspectCmd(app),
		newContactUpdateCmd(app),
		newContactRemoveCmd(app),
	)

	return cmd
}

func newContactAddCmd(app *App) *cobra.Command {
	var name, email, company, stage, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Contact{
				ID:        uuid.New().String(),
				Name:      name,
				Email:     email,
				Company:   company,
				Stage:     domain.ContactStage(stage),
				Notes:     notes,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}

			if err := app.Contacts.Create(context.Background(), c); err != nil {
				return err
			}

			fmt.Printf("Created contact %s (%s)\n", c.Name, c.Stage)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&stage, "stage", "lead", "Pipeline stage (lead|qualified|proposal|client|dormant)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newContactListCmd(app *App) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var contacts []*domain.Contact
			var err error
			if stage != "" {
				contacts, err = app.Contacts.ListByStage(ctx, domain.ContactStage(stage))
			} else {
				contacts, err = app.Contacts.List(ctx)
			}
			if err != nil {
				return err
			}

			if len(contacts) == 0 {
				fmt.Println("No contacts found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatContactList(contacts))
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Filter by pipeline stage")

	return cmd
}

func newContactInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show contact details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Contacts.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatContactInspect(c))
			return nil
		},
	}
}

func newContactUpdateCmd(app *App) *cobra.Command {
	var name, email, company, stage, notes string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := app.Contacts.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("email") {
				c.Email = email
			}
			if cmd.Flags().Changed("company") {
				c.Company = company
			}
			if cmd.Flags().Changed("stage") {
				c.Stage = domain.ContactStage(stage)
			}
			if cmd.Flags().Changed("notes") {
				c.Notes = notes
			}
			c.UpdatedAt = time.Now()

			if err := app.Contacts.Update(ctx, c); err != nil {
				return err
			}

			fmt.Printf("Updated contact %s (%s)\n", c.Name, c.Stage)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&stage, "stage", "", "Pipeline stage (lead|qualified|proposal|client|dormant)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")

	return cmd
}

func newContactRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Contacts.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed contact %s\n", args[0])
			return nil
		},
	}
}
