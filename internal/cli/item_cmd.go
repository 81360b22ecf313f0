package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/showrunnerhq/showrunner/internal/cli/formatter"
	"github.com/showrunnerhq/showrunner/internal/domain"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage timeline items",
	}

	cmd.AddCommand(
		newItemAddCmd(app),
		newItemListCmd(app),
		newItemInspectCmd(app),
		newItemUpdateCmd(app),
		newItemRemoveCmd(app),
		newItemDependsCmd(app),
	)

	return cmd
}

// parseLabelFlags turns repeated key=value flags into a label map.
func parseLabelFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		parts := strings.SplitN(p, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid label %q, expected key=value", p)
		}
		m[parts[0]] = parts[1]
	}
	return m, nil
}

func parseOptionalTimestamp(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: expected RFC 3339 (e.g. 2026-09-01T10:00:00Z)", flag, value)
	}
	return &t, nil
}

func newItemAddCmd(app *App) *cobra.Command {
	var project, title, itemType, lane, kind, desc, start, end, due, tz string
	var labels []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a timeline item",
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

			it := &domain.TimelineItem{
				ProjectID:   project,
				Type:        domain.ItemType(itemType),
				Lane:        lane,
				Kind:        kind,
				Title:       title,
				Description: desc,
				StartsAt:    startsAt,
				EndsAt:      endsAt,
				DueAt:       dueAt,
				Timezone:    tz,
				Labels:      labelMap,
				CreatedBy:   app.Config.DefaultOwner,
			}
			if err := app.Items.Create(context.Background(), it); err != nil {
				return err
			}

			fmt.Printf("Created item %q in lane %s (%s)\n", it.Title, it.Lane, it.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&itemType, "type", "", "Item type (event|task|milestone|hold|other)")
	cmd.Flags().StringVar(&lane, "lane", "", "Lane slug (resolved automatically when omitted)")
	cmd.Flags().StringVar(&kind, "kind", "", "Free-form kind (e.g. show, travel, press)")
	cmd.Flags().StringVar(&desc, "desc", "", "Description")
	cmd.Flags().StringVar(&start, "start", "", "Start timestamp (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "End timestamp (RFC 3339)")
	cmd.Flags().StringVar(&due, "due", "", "Due timestamp (RFC 3339)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone (e.g. Europe/Berlin)")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "Labels (key=value, repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's timeline items",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Items.ListByProject(context.Background(), project)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No items found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatItemList(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newItemInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show item details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := app.Items.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			incoming, err := app.Deps.ListIncoming(ctx, it.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatItemInspect(it, incoming))
			return nil
		},
	}
}

func newItemUpdateCmd(app *App) *cobra.Command {
	var title, lane, status, start, end, due, tz string
	var labels []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a timeline item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			it, err := app.Items.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				it.Title = title
			}
			if cmd.Flags().Changed("lane") {
				it.Lane = lane
			}
			if cmd.Flags().Changed("status") {
				it.Status = domain.ItemStatus(status)
			}
			if cmd.Flags().Changed("start") {
				if it.StartsAt, err = parseOptionalTimestamp("start", start); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if it.EndsAt, err = parseOptionalTimestamp("end", end); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("due") {
				if it.DueAt, err = parseOptionalTimestamp("due", due); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("tz") {
				it.Timezone = tz
			}
			if cmd.Flags().Changed("label") {
				labelMap, err := parseLabelFlags(labels)
				if err != nil {
					return err
				}
				if it.Labels == nil {
					it.Labels = map[string]string{}
				}
				for k, v := range labelMap {
					it.Labels[k] = v
				}
			}

			if err := app.Items.Update(ctx, it); err != nil {
				return err
			}
			fmt.Printf("Updated item %q\n", it.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&lane, "lane", "", "Lane slug")
	cmd.Flags().StringVar(&status, "status", "", "Status (planned|confirmed|done|cancelled)")
	cmd.Flags().StringVar(&start, "start", "", "Start timestamp (RFC 3339, empty clears)")
	cmd.Flags().StringVar(&end, "end", "", "End timestamp (RFC 3339, empty clears)")
	cmd.Flags().StringVar(&due, "due", "", "Due timestamp (RFC 3339, empty clears)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone")
	cmd.Flags().StringArrayVar(&labels, "label", nil, "Labels to set (key=value, repeatable)")

	return cmd
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a timeline item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Items.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed item %s\n", args[0])
			return nil
		},
	}
}

func newItemDependsCmd(app *App) *cobra.Command {
	var project, kind, note string
	var on []string

	cmd := &cobra.Command{
		Use:   "depends ID",
		Short: "Replace an item's dependencies",
		Long:  "Replaces all incoming dependency edges of the item with the given --on set. An empty set clears all dependencies.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edges := make([]domain.DependencyEdge, 0, len(on))
			for _, fromID := range on {
				edges = append(edges, domain.DependencyEdge{
					FromItemID: fromID,
					Kind:       kind,
					Note:       note,
				})
			}
			if err := app.Deps.SetDependencies(context.Background(), project, args[0], edges); err != nil {
				return err
			}
			fmt.Printf("Item %s now depends on %d item(s)\n", args[0], len(edges))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringArrayVar(&on, "on", nil, "Predecessor item ID (repeatable; omit to clear)")
	cmd.Flags().StringVar(&kind, "kind", "FS", "Edge kind (FS|SS)")
	cmd.Flags().StringVar(&note, "note", "", "Edge note")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
