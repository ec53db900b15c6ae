package eventlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/theme"
)

// StalenessThreshold defines how old FetchedAt can be before an event
// is considered stale. Defaults to 5 minutes.
var StalenessThreshold = 5 * time.Minute

// ListItemWrapper wraps a model.ListItem so it can be used in a bubbles/list.
type ListItemWrapper struct {
	Item model.ListItem
}

// FilterValue returns the string used for fuzzy filtering.
func (w ListItemWrapper) FilterValue() string {
	return w.Item.GetTitle() + " " + w.Item.GetPatient()
}

// Title returns the item title for the list.
func (w ListItemWrapper) Title() string {
	return w.Item.GetTitle()
}

// Description returns a short summary line for the list.
func (w ListItemWrapper) Description() string {
	parts := []string{
		w.Item.GetSource(),
		w.Item.GetStatus(),
		relativeTime(w.Item.GetUpdatedAt()),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering list items.
type ItemDelegate struct {
	// staleSources maps source names to true when the source has a sync
	// error. Shared by reference with the eventlist Model so updates
	// are visible.
	staleSources map[string]bool
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	wrapper, ok := item.(ListItemWrapper)
	if !ok {
		return
	}

	li := wrapper.Item
	isSelected := index == m.Index()

	if li.IsLocal() {
		d.renderReminder(w, li, isSelected)
	} else {
		d.renderEvent(w, li, isSelected)
	}
}

// renderReminder draws a local reminder row.
func (d ItemDelegate) renderReminder(w io.Writer, li model.ListItem, isSelected bool) {
	var prefix string
	if li.GetStatus() == model.ReminderStatusDone {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	srcBadge := theme.LocalBadgeStyle.Render("RMD")
	statusBadge := theme.StatusStyle(li.GetStatus()).Render(li.GetStatus())

	title := li.GetTitle()

	patientStr := ""
	if p := li.GetPatient(); p != "" {
		patientStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" [" + p + "]")
	}

	dueStr := ""
	if due := li.GetDueAt(); due != nil {
		dueStr = theme.DueDateStyle.Render(" " + due.Format("Jan 02 15:04"))
	}

	overdueStr := ""
	if li.IsOverdue() {
		overdueStr = theme.OverdueStyle.Render(" OVERDUE")
	}

	line := fmt.Sprintf(
		"%s %s %s %s%s%s%s",
		prefix, srcBadge, statusBadge, title, patientStr, dueStr, overdueStr,
	)

	if li.GetStatus() == model.ReminderStatusDone {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// renderEvent draws an external event row.
func (d ItemDelegate) renderEvent(w io.Writer, li model.ListItem, isSelected bool) {
	source := li.GetSource()

	srcStyle := theme.SourceLabelStyle(source)
	srcBadge := srcStyle.Render(strings.ToUpper(source)[:min(3, len(source))])

	statusBadge := theme.StatusStyle(li.GetStatus()).Render(li.GetStatus())

	dot := theme.SeverityStyle(li.GetSeverity()).Render("●")

	title := li.GetTitle()

	staleIndicator := ""
	if d.staleSources[source] {
		// Source has a sync error
		staleIndicator = lipgloss.NewStyle().
			Foreground(theme.ColorYellow).
			Render(" ⚠")
	} else if event, ok := li.(model.Event); ok {
		if time.Since(event.FetchedAt) > StalenessThreshold {
			staleIndicator = lipgloss.NewStyle().
				Foreground(theme.ColorGray).
				Render(" ●")
		}
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(relativeTime(li.GetUpdatedAt()))

	line := fmt.Sprintf(
		"%s %s %s %s%s  %s",
		dot, srcBadge, statusBadge, title, staleIndicator, timeStr,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
