package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Search
	Search key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Source filters
	FilterClinic  key.Binding
	FilterRecords key.Binding
	FilterInbox   key.Binding

	// Reminder actions
	NewReminder    key.Binding
	EditReminder   key.Binding
	ToggleDone     key.Binding
	DeleteReminder key.Binding

	// Notifications
	MarkAllRead key.Binding

	// Follow-up slot suggestion
	SuggestSlot key.Binding

	// Sort
	CycleSort key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open detail"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		FilterClinic: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "toggle appointments"),
		),
		FilterRecords: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "toggle records"),
		),
		FilterInbox: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "toggle referrals"),
		),
		NewReminder: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new reminder"),
		),
		EditReminder: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit reminder"),
		),
		ToggleDone: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle done"),
		),
		DeleteReminder: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete reminder"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark all read"),
		),
		SuggestSlot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "suggest follow-up slot"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle sort"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Search, k.Help, k.Refresh, k.MarkAllRead},
		{k.FilterClinic, k.FilterRecords, k.FilterInbox, k.CycleSort},
		{k.NewReminder, k.EditReminder, k.ToggleDone, k.DeleteReminder, k.SuggestSlot},
	}
}
