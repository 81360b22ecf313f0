package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/showrunnerhq/showrunner/internal/cli/formatter"
	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/service"
)

func newApprovalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approval",
		Short: "Review pending approvals",
	}

	cmd.AddCommand(
		newApprovalAddCmd(app),
		newApprovalListCmd(app),
		newApprovalInspectCmd(app),
		newApprovalDecideCmd(app, "approve", service.DecideApprove),
		newApprovalDecideCmd(app, "decline", service.DecideDecline),
		newApprovalReviewCmd(app),
		newApprovalBoardCmd(app),
	)

	return cmd
}

func newApprovalAddCmd(app *App) *cobra.Command {
	var project, approvalType, record, source, title, itemType, lane, kind, desc, start, end, due, tz, assignee string
	var confidence float64
	var labels []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Queue an approval for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			labelMap, err := parseLabelFlags(labels)
			if err != nil {
				return err
			}
			startsAt, err := parseOptionalTimestamp("start", start)
			if err != nil {
				return err
			}
			endsAt, err := parseOptionalTimestamp("end", end)
			if err != nil {
				return err
			}
			dueAt, err := parseOptionalTimestamp("due", due)
			if err != nil {
				return err
			}

			seed := &domain.TimelineSeed{
				Type:        itemType,
				Lane:        lane,
				Kind:        kind,
				Title:       title,
				Description: desc,
				StartsAt:    startsAt,
				EndsAt:      endsAt,
				DueAt:       dueAt,
				Timezone:    tz,
				Labels:      labelMap,
			}

			a := &domain.Approval{
				ProjectID:   project,
				Type:        domain.ApprovalType(approvalType),
				RequestedBy: cmd.Flag("user").Value.String(),
			}
			switch a.Type {
			case domain.ApprovalProjectEmailLink:
				a.Payload.RecordID = record
				a.Payload.Confidence = confidence
				a.Payload.Source = source
				if title != "" {
					a.Payload.TimelineSeed = seed
				}
			case domain.ApprovalTimelineItemFromEmail:
				a.Payload.RecordID = record
				a.Payload.TimelineSeed = seed
			case domain.ApprovalProjectTaskCreate:
				a.Payload.TaskSeed = &domain.TaskSeed{
					Title:       title,
					Description: desc,
					AssigneeID:  assignee,
				}
			default:
				a.Payload.TimelineSeed = seed
			}

			if err := app.Approvals.Create(context.Background(), a); err != nil {
				return err
			}
			fmt.Printf("Queued %s approval %s\n", a.Type, a.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&approvalType, "type", "", "Approval type (project_email_link|timeline_item_create|timeline_item_from_email|project_task_create)")
	cmd.Flags().StringVar(&record, "record", "", "External record ID (email link types)")
	cmd.Flags().Float64Var(&confidence, "confidence", 0, "Link confidence score (0..1)")
	cmd.Flags().StringVar(&source, "source", "", "Link source (ai|manual)")
	cmd.Flags().StringVar(&title, "title", "", "Seeded item or task title")
	cmd.Flags().StringVar(&itemType, "item-type", "", "Seeded item type (event|task|milestone|hold|other)")
	cmd.Flags().StringVar(&lane, "lane", "", "Seeded item lane slug")
	cmd.Flags().StringVar(&kind, "kind", "", "Seeded item kind")
	cmd.Flags().StringVar(&desc, "desc", "", "Seeded item or task description")
	cmd.Flags().StringVar(&start, "start", "", "Seeded item start timestamp (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "Seeded item end timestamp (RFC 3339)")
	cmd.Flags().StringVar(&due, "due", "", "Seeded item due timestamp (RFC 3339)")
	cmd.Flags().StringVar(&tz, "tz", "", "Seeded item IANA timezone")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "Seeded item labels (key=value, repeatable)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Task assignee (project_task_create)")
	userFlag(cmd, app)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newApprovalListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending approvals",
		RunE: func(cmd *cobra.Command, args []string) error {
			approvals, err := app.Approvals.ListPending(context.Background(), project)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatApprovalList(approvals))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Limit to one project")

	return cmd
}

func newApprovalInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show approval details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Approvals.GetByID(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatApprovalInspect(a))
			return nil
		},
	}
}

func newApprovalDecideCmd(app *App, verb string, action service.DecideAction) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   verb + " ID",
		Short: fmt.Sprintf("%s a pending approval", strings.ToUpper(verb[:1])+verb[1:]),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user := cmd.Flag("user").Value.String()
			a, err := app.Approvals.Decide(context.Background(), args[0], action, user, note)
			if err != nil {
				return err
			}
			fmt.Printf("Approval %s is now %s\n", args[0], a.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Resolution note")
	userFlag(cmd, app)

	return cmd
}

// newApprovalReviewCmd walks the pending queue one approval at a time with
// an interactive form.
func newApprovalReviewCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Interactively review the pending queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user := cmd.Flag("user").Value.String()

			approvals, err := app.Approvals.ListPending(ctx, project)
			if err != nil {
				return err
			}
			if len(approvals) == 0 {
				fmt.Println(formatter.FormatApprovalList(nil))
				return nil
			}
			if !app.interactive() {
				fmt.Printf("%s\n", formatter.FormatApprovalList(approvals))
				return nil
			}

			decided := 0
			for _, a := range approvals {
				fmt.Printf("%s\n", formatter.FormatApprovalInspect(a))

				action := "skip"
				note := ""
				if err := decideForm(formatter.ApprovalSummary(a), &action, &note).Run(); err != nil {
					return err
				}
				if action == "skip" {
					continue
				}

				resolved, err := app.Approvals.Decide(ctx, a.ID, service.DecideAction(action), user, note)
				if err != nil {
					return err
				}
				decided++
				fmt.Printf("%s %s\n\n", formatter.ApprovalStatusPill(resolved.Status), formatter.Dim(a.ID))
			}

			fmt.Printf("Reviewed %d approval(s), decided %d.\n", len(approvals), decided)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Limit to one project")
	userFlag(cmd, app)

	return cmd
}

func newApprovalBoardCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Full-screen approval queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				approvals, err := app.Approvals.ListPending(context.Background(), project)
				if err != nil {
					return err
				}
				fmt.Printf("%s\n", formatter.FormatApprovalList(approvals))
				return nil
			}
			user := cmd.Flag("user").Value.String()
			return runApprovalBoard(app, project, user)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Limit to one project")
	userFlag(cmd, app)

	return cmd
}