package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/showrunnerhq/showrunner/internal/cli/formatter"
	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/schedule"
)

func newConflictsCmd(app *App) *cobra.Command {
	var project string
	var buffer float64

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Scan a project's timeline for scheduling conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if !cmd.Flags().Changed("buffer") {
				buffer = app.Config.TerritoryBufferHours
			}
			conflicts, err := app.Schedule.Conflicts(ctx, project, buffer)
			if err != nil {
				return err
			}

			byID := make(map[string]*domain.TimelineItem)
			if items, err := app.Items.ListByProject(ctx, project); err == nil {
				for _, it := range items {
					byID[it.ID] = it
				}
			}

			fmt.Printf("%s\n", formatter.FormatConflicts(conflicts, byID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().Float64Var(&buffer, "buffer", 0, "Territory buffer in hours")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newSlotsCmd(app *App) *cobra.Command {
	var project, from, to, city, territory string
	var hours float64
	var max int
	var noTravel, noTZJumps, businessHours bool

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Find free slots in a project's timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			rangeStart, err := time.Parse(time.RFC3339, from)
			if err != nil {
				return fmt.Errorf("invalid --from %q: expected RFC 3339", from)
			}
			rangeEnd, err := time.Parse(time.RFC3339, to)
			if err != nil {
				return fmt.Errorf("invalid --to %q: expected RFC 3339", to)
			}

			var constraints []string
			if noTravel {
				constraints = append(constraints, schedule.ConstraintNotOverlappingTravel)
			}
			if noTZJumps {
				constraints = append(constraints, schedule.ConstraintAvoidTimezoneJumps)
			}
			if businessHours {
				constraints = append(constraints, schedule.ConstraintPreferBusinessHours)
			}

			result, err := app.Schedule.FindSlots(context.Background(), project, schedule.SlotOptions{
				RangeStart:         rangeStart,
				RangeEnd:           rangeEnd,
				Duration:           time.Duration(hours * float64(time.Hour)),
				City:               city,
				Territory:          territory,
				Constraints:        constraints,
				MaxResults:         max,
				BusinessHoursStart: app.Config.BusinessHoursStart,
				BusinessHoursEnd:   app.Config.BusinessHoursEnd,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatSlots(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&from, "from", "", "Range start (RFC 3339)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (RFC 3339)")
	cmd.Flags().Float64Var(&hours, "hours", 2, "Required slot length in hours")
	cmd.Flags().StringVar(&city, "city", "", "Only consider items in this city")
	cmd.Flags().StringVar(&territory, "territory", "", "Only consider items in this territory")
	cmd.Flags().IntVar(&max, "max", 0, "Maximum slots to return")
	cmd.Flags().BoolVar(&noTravel, "no-travel", false, "Skip slots adjacent to travel items")
	cmd.Flags().BoolVar(&noTZJumps, "no-tz-jumps", false, "Skip slots between items in different timezones")
	cmd.Flags().BoolVar(&businessHours, "business-hours", false, "Prefer slots within business hours")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
