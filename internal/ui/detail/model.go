package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkrishnan/caredesk/internal/keys"
	"github.com/rkrishnan/caredesk/internal/source"
	"github.com/rkrishnan/caredesk/internal/store"
	"github.com/rkrishnan/caredesk/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// DetailLoadedMsg carries the loaded item detail.
type DetailLoadedMsg struct {
	Detail *source.ItemDetail
}

// SuggestSlotMsg asks the parent to compute a follow-up slot for the
// current event's practitioner.
type SuggestSlotMsg struct {
	EventID      string
	Practitioner string
}

// SlotSuggestedMsg carries a computed follow-up slot back to the view.
type SlotSuggestedMsg struct {
	Slot  time.Time
	Found bool
}

// Model is the event detail view component.
type Model struct {
	detail    *source.ItemDetail
	viewport  viewport.Model
	store     store.Store
	keys      *keys.KeyMap
	slot      *time.Time
	slotMiss  bool
	width     int
	height    int
	loading   bool
}

// New creates a new detail view model.
func New(s store.Store, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		store:    s,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DetailLoadedMsg:
		m.detail = msg.Detail
		m.loading = false
		m.slot = nil
		m.slotMiss = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case SlotSuggestedMsg:
		if msg.Found {
			slot := msg.Slot
			m.slot = &slot
			m.slotMiss = false
		} else {
			m.slot = nil
			m.slotMiss = true
		}
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.SuggestSlot):
			if m.detail != nil && m.detail.Practitioner != "" {
				d := m.detail
				return m, func() tea.Msg {
					return SuggestSlotMsg{
						EventID:      d.ID,
						Practitioner: d.Practitioner,
					}
				}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render("Loading details...")
	}

	if m.detail == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("Nothing selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.detail == nil {
		return ""
	}

	d := m.detail
	var sections []string

	// Title
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(d.Title))

	// Badges line: source + category + status + severity
	srcBadge := theme.SourceLabelStyle(
		string(d.SourceType),
	).Render(strings.ToUpper(string(d.SourceType)))

	statusBadge := theme.StatusStyle(d.Status).Render(d.Status)
	sevBadge := theme.SeverityStyle(d.Severity).Render(d.Severity)

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, srcBadge, "  ", d.Category, "  ", statusBadge, "  ", sevBadge,
	)
	sections = append(sections, badgeLine)
	sections = append(sections, "")

	// Metadata table
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	if d.Patient != "" {
		sections = append(sections, fmt.Sprintf(
			"%s       %s",
			metaStyle.Render("Patient:"),
			valStyle.Render(d.Patient),
		))
	}
	if d.Practitioner != "" {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Practitioner:"),
			valStyle.Render(d.Practitioner),
		))
	}
	if d.OccursAt != nil {
		sections = append(sections, fmt.Sprintf(
			"%s          %s",
			metaStyle.Render("When:"),
			valStyle.Render(d.OccursAt.Format("Mon Jan 02, 15:04")),
		))
	}
	if !d.CreatedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s       %s",
			metaStyle.Render("Created:"),
			valStyle.Render(d.CreatedAt.Format("2006-01-02 15:04")),
		))
	}
	if !d.UpdatedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s       %s",
			metaStyle.Render("Updated:"),
			valStyle.Render(d.UpdatedAt.Format("2006-01-02 15:04")),
		))
	}

	// Extra metadata from the source
	for k, v := range d.Metadata {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render(k+":"),
			valStyle.Render(v),
		))
	}

	// Separator
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	// Body
	bodyHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections = append(sections, bodyHeaderStyle.Render("Notes"))

	body := d.RenderedBody
	if body == "" {
		body = d.Body
	}
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No notes")
	}
	sections = append(sections, body)

	// Follow-up slot suggestion
	if m.slot != nil || m.slotMiss {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		sections = append(sections, bodyHeaderStyle.Render("Follow-up"))
		if m.slot != nil {
			sections = append(sections, fmt.Sprintf(
				"Next free slot for %s: %s",
				d.Practitioner,
				theme.SeverityStyle("success").Render(
					m.slot.Format("Mon Jan 02, 15:04"),
				),
			))
		} else {
			sections = append(sections, theme.DimmedStyle.Render(
				"No free slot found in the search window.",
			))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDetail updates the item being displayed and re-renders the content.
func (m *Model) SetDetail(detail *source.ItemDetail) {
	m.detail = detail
	m.loading = false
	m.slot = nil
	m.slotMiss = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
