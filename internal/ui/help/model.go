package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkrishnan/caredesk/internal/keys"
	"github.com/rkrishnan/caredesk/internal/theme"
)

// Model is the help overlay: the full keymap plus legends for the
// source badges and toast severities shown in the feed.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		titleStyle.MarginTop(1).Render("Sources"),
		m.sourceLegend(),
		titleStyle.MarginTop(1).Render("Severities"),
		m.severityLegend(),
	)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// sourceLegend explains the feed's source badges.
func (m Model) sourceLegend() string {
	rows := []struct {
		label, desc string
	}{
		{"clinic", "appointments from the scheduling system"},
		{"records", "medical records and prescriptions"},
		{"inbox", "referrals from the partner mailbox"},
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines,
			theme.SourceLabelStyle(r.label).Render(r.label)+" "+r.desc)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// severityLegend explains the toast and feed severity markers.
func (m Model) severityLegend() string {
	rows := []struct {
		severity, marker, desc string
	}{
		{"info", "i", "new appointments and record updates"},
		{"success", "✓", "completed visits, saved reminders"},
		{"warning", "!", "cancellations and flagged referrals"},
		{"error", "✗", "sync and credential failures"},
	}

	var lines []string
	for _, r := range rows {
		lines = append(lines,
			theme.SeverityStyle(r.severity).Render(r.marker)+
				" "+r.severity+": "+r.desc)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
