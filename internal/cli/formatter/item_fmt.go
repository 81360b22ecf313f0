package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// FormatItemList renders a styled timeline item list inside a bordered box.
func FormatItemList(items []*domain.TimelineItem) string {
	headers := []string{"ID", "WHEN", "TITLE", "TYPE", "LANE", "STATUS"}
	rows := make([][]string, 0, len(items))

	for _, it := range items {
		rows = append(rows, []string{
			TruncID(it.ID),
			TimeWindow(it.StartsAt, it.EndsAt, it.DueAt),
			Bold(Truncate(it.Title, 40)),
			StyleFg.Render(string(it.Type)),
			LaneBadge(it.Lane),
			ItemStatusPill(it.Status),
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Timeline", table)
}

// FormatItemInspect renders a single item card with labels, links, and
// incoming dependencies.
func FormatItemInspect(it *domain.TimelineItem, incoming []domain.Dependency) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(it.Title) + "\n")
	b.WriteString(LaneBadge(it.Lane) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS"), ItemStatusPill(it.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TYPE  "), StyleFg.Render(string(it.Type))))
	if it.Kind != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("KIND  "), StyleFg.Render(it.Kind)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("WHEN  "), TimeWindow(it.StartsAt, it.EndsAt, it.DueAt)))
	if it.Timezone != "" {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("TZ    "), StyleFg.Render(it.Timezone)))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UUID  "), TruncID(it.ID)))

	if it.Description != "" {
		b.WriteString("\n" + StyleFg.Render(it.Description) + "\n")
	}

	if len(it.Labels) > 0 {
		b.WriteString("\n" + StyleDim.Render("LABELS") + "\n")
		for _, k := range sortedKeys(it.Labels) {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim(k+":"), StyleFg.Render(it.Labels[k])))
		}
	}
	if len(it.Links) > 0 {
		b.WriteString("\n" + StyleDim.Render("LINKS") + "\n")
		for _, k := range sortedKeys(it.Links) {
			b.WriteString(fmt.Sprintf("  %s %s\n", Dim(k+":"), StyleFg.Render(it.Links[k])))
		}
	}

	if len(incoming) > 0 {
		b.WriteString("\n" + StyleDim.Render("DEPENDS ON") + "\n")
		for _, d := range incoming {
			line := fmt.Sprintf("  %s %s", StylePurple.Render(string(d.Kind)), TruncID(d.FromItemID))
			if d.Note != "" {
				line += " " + Dim("("+d.Note+")")
			}
			b.WriteString(line + "\n")
		}
	}

	return RenderBox("", b.String())
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
