package cli

import (
	"github.com/spf13/cobra"

	"github.com/showrunnerhq/showrunner/internal/config"
	"github.com/showrunnerhq/showrunner/internal/service"
)

// App holds references to all service interfaces used by CLI commands,
// plus the loaded runtime config.
type App struct {
	Items     service.TimelineItemService
	Lanes     service.LaneService
	Deps      service.DependencyService
	Approvals service.ApprovalService
	Rules     service.AssignmentRuleService
	Schedule  service.ScheduleService
	Import    service.ImportService

	Config config.Config

	// IsInteractive reports whether stdin is a terminal; interactive review
	// flows degrade to plain listings when it returns false or is unset.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "showrunner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "showrunner",
		Short: "Tour and release timeline planner",
	}

	root.AddCommand(
		newItemCmd(app),
		newLaneCmd(app),
		newConflictsCmd(app),
		newSlotsCmd(app),
		newApprovalCmd(app),
		newRuleCmd(app),
		newImportCmd(app),
	)

	return root
}

// userFlag registers the common --user flag and returns its target, seeded
// from the config default.
func userFlag(cmd *cobra.Command, app *App) *string {
	user := app.Config.DefaultOwner
	cmd.Flags().StringVar(&user, "user", user, "Acting user ID")
	return &user
}
