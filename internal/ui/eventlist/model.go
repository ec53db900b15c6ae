package eventlist

import (
	"context"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rkrishnan/caredesk/internal/keys"
	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/store"
	"github.com/rkrishnan/caredesk/internal/theme"
)

// ItemsLoadedMsg is sent when events and reminders have been loaded
// from the store.
type ItemsLoadedMsg struct {
	Items []model.ListItem
}

// SelectedItemMsg is sent when a user selects an item to view details.
type SelectedItemMsg struct {
	ID      string
	IsLocal bool
}

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []string{
	"updated_at",
	"occurs_at",
	"title",
	"status",
	"created_at",
}

// Model is the unified feed view: external events plus local reminders.
type Model struct {
	list          list.Model
	store         store.Store
	keys          *keys.KeyMap
	filter        store.EventFilter
	sourceFilters map[model.SourceType]bool
	showDone      bool
	sortIndex     int
	searchMode    bool
	searchInput   textinput.Model
	staleSources  map[string]bool
	width         int
	height        int
}

// New creates a new feed list model.
func New(s store.Store, k *keys.KeyMap, width, height int) Model {
	stale := make(map[string]bool)
	delegate := ItemDelegate{staleSources: stale}
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Clinic Feed"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search patients, appointments..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		filter: store.EventFilter{
			SortBy:   "updated_at",
			SortDesc: true,
		},
		sourceFilters: make(map[model.SourceType]bool),
		sortIndex:     0,
		searchInput:   si,
		staleSources:  stale,
		width:         width,
		height:        height,
	}
}

// Init returns a command that loads the initial set of items.
func (m Model) Init() tea.Cmd {
	return m.LoadItems()
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ItemsLoadedMsg:
		items := make([]list.Item, len(msg.Items))
		for i, it := range msg.Items {
			items[i] = ListItemWrapper{Item: it}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadItems()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadItems()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		wrapper, ok := m.list.SelectedItem().(ListItemWrapper)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedItemMsg{
				ID:      wrapper.Item.GetID(),
				IsLocal: wrapper.Item.IsLocal(),
			}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.FilterClinic):
		m.toggleSourceFilter(model.SourceTypeClinic)
		return m, m.LoadItems()

	case key.Matches(msg, m.keys.FilterRecords):
		m.toggleSourceFilter(model.SourceTypeRecords)
		return m, m.LoadItems()

	case key.Matches(msg, m.keys.FilterInbox):
		m.toggleSourceFilter(model.SourceTypeInbox)
		return m, m.LoadItems()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex]
		return m, m.LoadItems()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// toggleSourceFilter toggles a source type filter on or off and
// updates the filter struct accordingly.
func (m *Model) toggleSourceFilter(st model.SourceType) {
	if m.sourceFilters[st] {
		delete(m.sourceFilters, st)
	} else {
		m.sourceFilters[st] = true
	}

	var activeTypes []model.SourceType
	for st, active := range m.sourceFilters {
		if active {
			activeTypes = append(activeTypes, st)
		}
	}

	// If exactly one source filter is active, apply it; otherwise show all
	if len(activeTypes) == 1 {
		s := string(activeTypes[0])
		m.filter.SourceType = &s
	} else {
		m.filter.SourceType = nil
	}
}

// SetSourceStale flags or clears a source's sync-error indicator.
func (m *Model) SetSourceStale(source string, stale bool) {
	if stale {
		m.staleSources[source] = true
	} else {
		delete(m.staleSources, source)
	}
}

// SelectedItem returns the currently focused list item, or nil.
func (m Model) SelectedItem() model.ListItem {
	wrapper, ok := m.list.SelectedItem().(ListItemWrapper)
	if !ok {
		return nil
	}
	return wrapper.Item
}

// View renders the feed view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no items are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.SourceType != nil ||
		m.filter.Status != nil ||
		m.filter.Query != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching items.\nTry adjusting your filters.")
	}

	return style.Render(
		"Nothing in the feed yet.\n\n" +
			"Configure a source in ~/.config/caredesk/config.yaml\n" +
			"or press n to add a reminder.",
	)
}

// LoadItems returns a tea.Cmd that queries events and reminders with
// the current filter and merges them into one feed.
func (m Model) LoadItems() tea.Cmd {
	filter := m.filter
	s := m.store
	sourceOnly := filter.SourceType != nil
	return func() tea.Msg {
		ctx := context.Background()

		events, err := s.GetEvents(ctx, filter)
		if err != nil {
			events = nil
		}

		var reminders []model.Reminder
		if !sourceOnly {
			rf := store.ReminderFilter{
				SortBy: "due_at",
				Limit:  200,
			}
			if filter.Query != nil {
				rf.Query = filter.Query
			}
			reminders, err = s.GetReminders(ctx, rf)
			if err != nil {
				reminders = nil
			}
		}

		items := make([]model.ListItem, 0, len(events)+len(reminders))
		for _, r := range reminders {
			items = append(items, r)
		}
		for _, e := range events {
			items = append(items, e)
		}

		// Open reminders float to the top; both groups keep their
		// store ordering otherwise.
		sort.SliceStable(items, func(i, j int) bool {
			li, lj := items[i], items[j]
			openI := li.IsLocal() && li.GetStatus() == model.ReminderStatusOpen
			openJ := lj.IsLocal() && lj.GetStatus() == model.ReminderStatusOpen
			return openI && !openJ
		})

		return ItemsLoadedMsg{Items: items}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
