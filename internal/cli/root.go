package cli

import (
	"github.com/spf13/cobra"

	"github.com/danvoss/stride/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Contacts     service.ContactService
	WorkPackages service.WorkPackageService
	Phases       service.PhaseService
	Items        service.ItemService
	Status       service.StatusService
	Import       service.ImportService
	Outreach     service.OutreachService

	// IsInteractive reports whether stdin is a terminal, enabling
	// interactive forms.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "stride" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "stride",
		Short: "Business development CRM with work package scheduling",
	}

	root.AddCommand(
		newContactCmd(app),
		newWorkPackageCmd(app),
		newPhaseCmd(app),
		newItemCmd(app),
		newStatusCmd(app),
		newDraftCmd(app),
	)

	return root
}
