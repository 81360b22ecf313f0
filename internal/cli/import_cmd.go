package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a schedule from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := cmd.Flag("user").Value.String()
			report, err := app.Import.ImportFile(context.Background(), args[0], user)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d item(s), %d dependenc(ies), %d lane(s) created, %d reused\n",
				report.Items, report.Dependencies, report.LanesCreated, report.LanesReused)
			return nil
		},
	}

	userFlag(cmd, app)

	return cmd
}
