package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danvoss/stride/internal/cli/formatter"
	"github.com/danvoss/stride/internal/llm"
)

func newDraftCmd(app *App) *cobra.Command {
	var angle string

	cmd := &cobra.Command{
		Use:   "draft CONTACT_ID",
		Short: "Draft an outreach email for a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if app.Outreach == nil {
				return llm.ErrDisabled
			}

			c, err := app.Contacts.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			stop := formatter.StartSpinner("Drafting outreach...")
			draft, err := app.Outreach.Draft(ctx, c.ID, angle)
			stop()
			if err != nil {
				if errors.Is(err, llm.ErrUnavailable) {
					return fmt.Errorf("ollama is not reachable; is it running? (%w)", err)
				}
				return err
			}

			fmt.Printf("%s\n", formatter.FormatDraft(c.Name, draft))
			return nil
		},
	}

	cmd.Flags().StringVar(&angle, "angle", "", "Angle or hook for this email")

	return cmd
}
