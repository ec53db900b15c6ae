package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// DetailPanelStyle wraps the detail view content area.
var DetailPanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// LocalBadgeStyle marks locally created reminders in the unified list.
var LocalBadgeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorMagenta)

// DimmedStyle de-emphasizes completed or exiting content.
var DimmedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// DueDateStyle is used for reminder due dates in list rows.
var DueDateStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// OverdueStyle highlights reminders past their due date.
var OverdueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// StatusStyle returns a color-coded style for the given normalized status.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case "scheduled":
		return base.Foreground(ColorBlue)
	case "completed":
		return base.Foreground(ColorGreen)
	case "cancelled":
		return base.Foreground(ColorRed)
	case "open":
		return base.Foreground(ColorYellow)
	case "done":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// SeverityStyle returns a color-coded style for the given alert severity.
// Used both for feed items and for transient toast rendering.
func SeverityStyle(severity string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch severity {
	case "success":
		return base.Foreground(ColorGreen)
	case "warning":
		return base.Foreground(ColorOrange)
	case "error":
		return base.Foreground(ColorRed)
	case "info":
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// SeverityBorderStyle returns a bordered style for toast boxes, tinted
// by severity.
func SeverityBorderStyle(severity string) lipgloss.Style {
	base := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	switch severity {
	case "success":
		return base.BorderForeground(ColorGreen)
	case "warning":
		return base.BorderForeground(ColorOrange)
	case "error":
		return base.BorderForeground(ColorRed)
	default:
		return base.BorderForeground(ColorBlue)
	}
}

// SourceLabelStyle returns a color-coded style for the given source type label.
func SourceLabelStyle(sourceType string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch sourceType {
	case "clinic":
		return base.Foreground(ColorBlue)
	case "records":
		return base.Foreground(ColorMagenta)
	case "inbox":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
