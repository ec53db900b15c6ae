package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rkrishnan/caredesk/internal/theme"
)

// toastGutter keeps the toast column off the right edge so its border
// is never clipped by the terminal.
const toastGutter = 4

// Layout manages the console frame dimensions: header, content area,
// status bar, and the toast overlay column.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header and status bar.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// ToastWidth returns the maximum width of the toast overlay column.
func (l Layout) ToastWidth() int {
	w := l.Width - toastGutter
	if w < 0 {
		w = 0
	}
	return w
}

// RenderHeader renders the top header bar with a title and sync status.
func (l Layout) RenderHeader(title string, syncStatus string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(syncStatus)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes the full terminal view: header, content
// area, the toast overlay column right-aligned beneath the content it
// annotates, and the status bar. An empty toast column collapses to
// the plain three-row frame.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
	toasts string,
) string {
	if toasts == "" {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			content,
			statusBar,
		)
	}

	aligned := lipgloss.NewStyle().
		Width(l.Width).
		Align(lipgloss.Right).
		Render(toasts)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		aligned,
		statusBar,
	)
}
