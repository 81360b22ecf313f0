package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/showrunnerhq/showrunner/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityIndicator returns a colored conflict severity string such as
// "● ERROR".
func SeverityIndicator(sev domain.ConflictSeverity) string {
	switch sev {
	case domain.SeverityError:
		return StyleRed.Render("● ERROR")
	case domain.SeverityWarning:
		return StyleYellow.Render("● WARNING")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(sev)))
	}
}

// ItemStatusPill returns a colored status indicator for a timeline item.
func ItemStatusPill(status domain.ItemStatus) string {
	switch status {
	case domain.ItemPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.ItemConfirmed:
		return StyleGreen.Render("● Confirmed")
	case domain.ItemDone:
		return StyleDim.Render("✔ Done")
	case domain.ItemCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// ApprovalStatusPill returns a colored status indicator for an approval.
func ApprovalStatusPill(status domain.ApprovalStatus) string {
	switch status {
	case domain.ApprovalPending:
		return StyleYellow.Render("◌ Pending")
	case domain.ApprovalApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.ApprovalDeclined:
		return StyleRed.Render("✖ Declined")
	default:
		return StyleDim.Render(string(status))
	}
}

// LaneBadge returns a purple-styled lane slug, or a dim placeholder.
func LaneBadge(slug string) string {
	if slug == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(slug)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
