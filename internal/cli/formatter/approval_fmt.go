package formatter

import (
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// FormatApprovalList renders pending approvals inside a bordered box.
func FormatApprovalList(approvals []*domain.Approval) string {
	if len(approvals) == 0 {
		return StyleGreen.Render("✔ Nothing waiting for review.")
	}

	headers := []string{"ID", "TYPE", "SUMMARY", "REQUESTED BY", "AGE"}
	rows := make([][]string, 0, len(approvals))
	for _, a := range approvals {
		rows = append(rows, []string{
			TruncID(a.ID),
			StylePurple.Render(string(a.Type)),
			StyleFg.Render(Truncate(ApprovalSummary(a), 44)),
			StyleFg.Render(a.RequestedBy),
			Dim(HumanTimestamp(a.CreatedAt)),
		})
	}

	return RenderBox("Pending approvals", RenderTable(headers, rows))
}

// ApprovalSummary produces a one-line description of what approving would do.
func ApprovalSummary(a *domain.Approval) string {
	switch a.Type {
	case domain.ApprovalProjectEmailLink:
		s := fmt.Sprintf("link record %s", a.Payload.RecordID)
		if a.Payload.TimelineSeed != nil {
			s += fmt.Sprintf(" + item %q", a.Payload.TimelineSeed.Title)
		}
		return s
	case domain.ApprovalTimelineItemCreate, domain.ApprovalTimelineItemFromEmail:
		if a.Payload.TimelineSeed != nil {
			return fmt.Sprintf("create item %q", a.Payload.TimelineSeed.Title)
		}
	case domain.ApprovalProjectTaskCreate:
		if a.Payload.TaskSeed != nil {
			return fmt.Sprintf("create task %q", a.Payload.TaskSeed.Title)
		}
	}
	return string(a.Type)
}

// FormatApprovalInspect renders one approval in full.
func FormatApprovalInspect(a *domain.Approval) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(ApprovalSummary(a)) + "\n\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS "), ApprovalStatusPill(a.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TYPE   "), StylePurple.Render(string(a.Type))))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROJECT"), StyleFg.Render(a.ProjectID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("BY     "), StyleFg.Render(a.RequestedBy)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID   "), TruncID(a.ID)))

	if a.Payload.RecordID != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("RECORD "), StyleFg.Render(a.Payload.RecordID)))
	}
	if a.Payload.Confidence > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("CONF   "), StyleFg.Render(fmt.Sprintf("%.2f", a.Payload.Confidence))))
	}
	if seed := a.Payload.TimelineSeed; seed != nil {
		b.WriteString("\n" + StyleDim.Render("SEED ITEM") + "\n")
		b.WriteString("  " + Bold(seed.Title) + "\n")
		b.WriteString("  " + TimeWindow(seed.StartsAt, seed.EndsAt, seed.DueAt) + "\n")
		if seed.Lane != "" {
			b.WriteString("  " + LaneBadge(seed.Lane) + "\n")
		}
		if len(seed.Edges) > 0 {
			b.WriteString(Dim(fmt.Sprintf("  %d dependency edge(s)", len(seed.Edges))) + "\n")
		}
	}
	if seed := a.Payload.TaskSeed; seed != nil {
		b.WriteString("\n" + StyleDim.Render("SEED TASK") + "\n")
		b.WriteString("  " + Bold(seed.Title) + "\n")
		if seed.AssigneeID != "" {
			b.WriteString("  " + Dim("assignee: ") + StyleFg.Render(seed.AssigneeID) + "\n")
		}
	}

	if a.Resolved() {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("DECIDED"), StyleFg.Render(a.ApproverID)))
		if a.ResolutionNote != "" {
			b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("NOTE   "), StyleFg.Render(a.ResolutionNote)))
		}
	}

	return RenderBox("Approval", strings.TrimRight(b.String(), "\n"))
}
