package formatter

import (
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// FormatRuleList renders a user's assignment rules inside a bordered box.
func FormatRuleList(rules []*domain.AssignmentRule) string {
	headers := []string{"#", "NAME", "PROJECT", "CONDITIONS", "CONF", "ON"}
	rows := make([][]string, 0, len(rules))

	for _, r := range rules {
		enabled := StyleGreen.Render("●")
		if !r.Enabled {
			enabled = StyleDim.Render("○")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", r.SortOrder)),
			Bold(r.Name),
			StyleFg.Render(r.ProjectID),
			StyleFg.Render(summarizeConditions(&r.Conditions)),
			StylePurple.Render(string(r.Confidence)),
			enabled,
		})
	}

	return RenderBox("Assignment rules", RenderTable(headers, rows))
}

func summarizeConditions(cs *domain.ConditionSet) string {
	parts := make([]string, 0, len(cs.Conditions))
	for _, c := range cs.Conditions {
		want := c.Value
		if len(c.Values) > 0 {
			want = strings.Join(c.Values, "|")
		}
		parts = append(parts, fmt.Sprintf("%s %s %q", c.Field, c.Op, want))
	}
	joiner := " AND "
	if cs.Match == domain.MatchAny {
		joiner = " OR "
	}
	return Truncate(strings.Join(parts, joiner), 48)
}

// FormatRuleApplyReport summarizes one rule evaluation pass over a record.
func FormatRuleApplyReport(evaluated, matched int, linked []*domain.RecordLink) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s evaluated, %s matched, %s linked\n",
		StyleFg.Render(fmt.Sprintf("%d", evaluated)),
		StyleYellow.Render(fmt.Sprintf("%d", matched)),
		StyleGreen.Render(fmt.Sprintf("%d", len(linked)))))
	for _, l := range linked {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			StyleGreen.Render("→"),
			StyleFg.Render(l.ProjectID),
			Dim(fmt.Sprintf("(confidence %.1f)", l.Confidence))))
	}
	return strings.TrimRight(b.String(), "\n")
}
