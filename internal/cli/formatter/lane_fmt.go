package formatter

import (
	"fmt"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// FormatLaneList renders the visible lanes inside a bordered box.
func FormatLaneList(lanes []*domain.LaneDefinition) string {
	headers := []string{"SLUG", "NAME", "SCOPE", "AUTO", "ID"}
	rows := make([][]string, 0, len(lanes))

	for _, l := range lanes {
		auto := Dim("--")
		if l.AutoAssign != nil && len(l.AutoAssign.Conditions) > 0 {
			auto = StyleGreen.Render(fmt.Sprintf("%d cond", len(l.AutoAssign.Conditions)))
		}
		scope := StyleBlue.Render(string(l.Scope))
		if l.Scope == domain.LaneScopeUser {
			scope = StylePurple.Render(string(l.Scope))
		}
		rows = append(rows, []string{
			LaneBadge(l.Slug),
			StyleFg.Render(l.Name),
			scope,
			auto,
			TruncID(l.ID),
		})
	}

	return RenderBox("Lanes", RenderTable(headers, rows))
}

// FormatReapplyReport summarizes a lane rule reapplication run.
func FormatReapplyReport(updated, unchanged, skipped int) string {
	return fmt.Sprintf("%s updated, %s unchanged, %s skipped",
		StyleGreen.Render(fmt.Sprintf("%d", updated)),
		StyleFg.Render(fmt.Sprintf("%d", unchanged)),
		StyleYellow.Render(fmt.Sprintf("%d", skipped)))
}
