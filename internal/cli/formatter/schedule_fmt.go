package formatter

import (
	"fmt"
	"strings"

	"github.com/showrunnerhq/showrunner/internal/domain"
	"github.com/showrunnerhq/showrunner/internal/schedule"
)

// FormatConflicts renders the conflict scan result. Titles come from the
// items map so the listing can name both sides of each pair.
func FormatConflicts(conflicts []schedule.Conflict, items map[string]*domain.TimelineItem) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("✔ No conflicts found.")
	}

	var b strings.Builder
	for i, c := range conflicts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(SeverityIndicator(c.Severity) + "\n")
		b.WriteString("  " + StyleFg.Render(c.Message) + "\n")
		for _, id := range c.ItemIDs {
			label := TruncID(id)
			if it, ok := items[id]; ok {
				label = fmt.Sprintf("%s %s", TruncID(id), Bold(Truncate(it.Title, 50)))
			}
			b.WriteString("    " + label + "\n")
		}
	}

	title := fmt.Sprintf("%d conflict(s)", len(conflicts))
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// FormatSlots renders the free-slot search result.
func FormatSlots(result schedule.SlotResult) string {
	if len(result.Slots) == 0 {
		return StyleYellow.Render("No free slots found in the requested range.")
	}

	headers := []string{"#", "START", "END", "LENGTH"}
	rows := make([][]string, 0, len(result.Slots))
	for i, s := range result.Slots {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			StyleFg.Render(s.Start.Format("Mon Jan 2 15:04")),
			StyleFg.Render(s.End.Format("Mon Jan 2 15:04")),
			StyleGreen.Render(HumanDuration(s.End.Sub(s.Start))),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n\n")
	b.WriteString(Dim(fmt.Sprintf("Scanned %d item(s), %.1fh requested, %s - %s",
		result.Meta.ScannedItems,
		result.Meta.RequestedDuration,
		result.Meta.RangeStart.Format("Jan 2"),
		result.Meta.RangeEnd.Format("Jan 2"))))

	return RenderBox("Free slots", b.String())
}
