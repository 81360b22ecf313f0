package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/showrunnerhq/showrunner/internal/cli/formatter"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

func newRuleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rule",
		Short: "Manage assignment rules",
	}

	cmd.AddCommand(
		newRuleAddCmd(app),
		newRuleListCmd(app),
		newRuleRemoveCmd(app),
		newRuleApplyCmd(app),
	)

	return cmd
}

func newRuleAddCmd(app *App) *cobra.Command {
	var project, name, field, op, value, confidence, match string
	var order int
	var values []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an assignment rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.AssignmentRule{
				OwnerID:   cmd.Flag("user").Value.String(),
				ProjectID: project,
				Name:      name,
				Enabled:   true,
				SortOrder: order,
				Conditions: domain.ConditionSet{
					Match: match,
					Conditions: []domain.Condition{
						{Field: field, Op: op, Value: value, Values: values},
					},
				},
				Confidence: domain.ConfidenceLevel(confidence),
			}
			if err := app.Rules.Create(context.Background(), r); err != nil {
				return err
			}
			fmt.Printf("Created rule %q -> project %s\n", r.Name, r.ProjectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Target project ID")
	cmd.Flags().StringVar(&name, "name", "", "Rule name")
	cmd.Flags().StringVar(&field, "field", "", "Condition field (subject, body, from, category, label:<key>)")
	cmd.Flags().StringVar(&op, "op", "contains", "Condition operator")
	cmd.Flags().StringVar(&value, "value", "", "Condition value")
	cmd.Flags().StringArrayVar(&values, "values", nil, "Condition value set (for the in operator)")
	cmd.Flags().StringVar(&match, "match", domain.MatchAll, "Match mode (all|any)")
	cmd.Flags().StringVar(&confidence, "confidence", string(domain.ConfidenceMedium), "Link confidence (high|medium|low)")
	cmd.Flags().IntVar(&order, "order", 0, "Evaluation order (ascending)")
	userFlag(cmd, app)
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func newRuleListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your assignment rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := cmd.Flag("user").Value.String()
			rules, err := app.Rules.List(context.Background(), user, !all)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatRuleList(rules))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include disabled rules")
	userFlag(cmd, app)

	return cmd
}

func newRuleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an assignment rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Rules.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed rule %s\n", args[0])
			return nil
		},
	}
}

// newRuleApplyCmd evaluates the caller's rules against an ad-hoc record,
// which is mainly useful for trying out a new rule.
func newRuleApplyCmd(app *App) *cobra.Command {
	var recordID, subject, body, from, category string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Evaluate your rules against a record",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := cmd.Flag("user").Value.String()
			rec := &domain.InboundRecord{
				ID:       recordID,
				Subject:  subject,
				Body:     body,
				From:     from,
				Category: category,
			}
			report, err := app.Rules.Apply(context.Background(), user, rec)
			if err != nil {
				return err
			}
			fmt.Println(formatter.FormatRuleApplyReport(report.Evaluated, report.Matched, report.Linked))
			return nil
		},
	}

	cmd.Flags().StringVar(&recordID, "record", "", "Record ID")
	cmd.Flags().StringVar(&subject, "subject", "", "Record subject")
	cmd.Flags().StringVar(&body, "body", "", "Record body")
	cmd.Flags().StringVar(&from, "from", "", "Record sender")
	cmd.Flags().StringVar(&category, "category", "", "Record category")
	userFlag(cmd, app)
	_ = cmd.MarkFlagRequired("record")

	return cmd
}
