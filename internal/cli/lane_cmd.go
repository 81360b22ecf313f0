package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/showrunnerhq/showrunner/internal/cli/formatter"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

func newLaneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lane",
		Short: "Manage lanes",
	}

	cmd.AddCommand(
		newLaneAddCmd(app),
		newLaneListCmd(app),
		newLaneRemoveCmd(app),
		newLaneReapplyCmd(app),
	)

	return cmd
}

func newLaneAddCmd(app *App) *cobra.Command {
	var slug, name, color string
	var condField, condOp, condValue string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a lane",
		RunE: func(cmd *cobra.Command, args []string) error {
			l := &domain.LaneDefinition{
				Slug:  slug,
				Name:  name,
				Color: color,
			}
			if user := cmd.Flag("user").Value.String(); user != "" {
				l.OwnerID = user
			}
			if condField != "" {
				l.AutoAssign = &domain.ConditionSet{
					Match: domain.MatchAll,
					Conditions: []domain.Condition{
						{Field: condField, Op: condOp, Value: condValue},
					},
				}
			}
			if err := app.Lanes.Create(context.Background(), l); err != nil {
				return err
			}
			fmt.Printf("Created lane %s\n", l.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "Lane slug (uppercase, e.g. PROMO)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&color, "color", "", "Hex color")
	cmd.Flags().StringVar(&condField, "match-field", "", "Auto-assign condition field (e.g. kind, label:city)")
	cmd.Flags().StringVar(&condOp, "match-op", "contains", "Auto-assign condition operator")
	cmd.Flags().StringVar(&condValue, "match-value", "", "Auto-assign condition value")
	userFlag(cmd, app)
	_ = cmd.MarkFlagRequired("slug")

	return cmd
}

func newLaneListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible lanes",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := cmd.Flag("user").Value.String()
			lanes, err := app.Lanes.List(context.Background(), user)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatLaneList(lanes))
			return nil
		},
	}
	userFlag(cmd, app)
	return cmd
}

func newLaneRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a lane (blocked while items reference it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Lanes.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed lane %s\n", args[0])
			return nil
		},
	}
}

func newLaneReapplyCmd(app *App) *cobra.Command {
	var project, lane string

	cmd := &cobra.Command{
		Use:   "reapply",
		Short: "Re-run lane auto-assign rules over a project's items",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := cmd.Flag("user").Value.String()
			report, err := app.Lanes.ReapplyRules(context.Background(), project, lane, user)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatReapplyReport(report.Updated, report.Unchanged, report.Skipped))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&lane, "lane", "", "Only reconsider items currently in this lane")
	userFlag(cmd, app)
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
