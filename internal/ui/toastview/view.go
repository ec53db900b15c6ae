package toastview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rkrishnan/caredesk/internal/theme"
	"github.com/rkrishnan/caredesk/internal/toast"
)

// Render draws the current toast stack as a column of boxes, newest at
// the bottom, each tinted by its severity. Entering and exiting toasts
// are dimmed to approximate the fade transitions. Returns "" when there
// is nothing to show.
func Render(stack *toast.Stack, maxWidth int) string {
	if stack == nil {
		return ""
	}

	toasts := stack.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	var boxes []string
	for _, t := range toasts {
		state := t.State()
		if state == toast.StateRemoved {
			continue
		}

		label := severityLabel(t.Severity)
		line := theme.SeverityStyle(string(t.Severity)).Render(label) +
			" " + t.Message

		box := theme.SeverityBorderStyle(string(t.Severity)).
			MaxWidth(maxWidth).
			Render(line)

		if state == toast.StateEntering || state == toast.StateExiting {
			box = theme.DimmedStyle.Render(box)
		}

		boxes = append(boxes, box)
	}

	if len(boxes) == 0 {
		return ""
	}

	return lipgloss.JoinVertical(lipgloss.Right, boxes...)
}

func severityLabel(s toast.Severity) string {
	switch s {
	case toast.SeveritySuccess:
		return "✓"
	case toast.SeverityWarning:
		return "!"
	case toast.SeverityError:
		return "✗"
	default:
		return "i"
	}
}
