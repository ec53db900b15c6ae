package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/store"
	appsync "github.com/rkrishnan/caredesk/internal/sync"
	"github.com/rkrishnan/caredesk/internal/toast"
	"github.com/rkrishnan/caredesk/internal/ui"
	"github.com/rkrishnan/caredesk/internal/ui/detail"
	"github.com/rkrishnan/caredesk/internal/ui/eventlist"
	helpview "github.com/rkrishnan/caredesk/internal/ui/help"
	"github.com/rkrishnan/caredesk/internal/ui/reminderform"
	"github.com/rkrishnan/caredesk/internal/ui/toastview"
)

// unreadCountMsg carries the number of unread notifications to the UI.
type unreadCountMsg struct {
	count int
}

// toastChangedMsg is sent whenever a toast transitions state, so the
// view re-renders the overlay.
type toastChangedMsg struct {
	event toast.Event
}

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewReminderCreate
	ViewReminderEdit
)

// Model is the root Bubble Tea model that manages view routing, layout,
// toast display, and access to the persistence layer.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *store.SQLiteStore
	cfg          *model.AppConfig
	keys         *KeyMap
	feed         eventlist.Model
	detail       detail.Model
	helpView     helpview.Model
	reminderForm reminderform.Model
	poller       *appsync.Poller
	toasts       *toast.Manager
	surface      *toast.StackSurface
	adapters     *sourceAdapters
	ready        bool
	unreadCount  int
}

// New creates a new root application model. The toast manager and its
// surface are injected so the entrypoint controls timing configuration.
func New(
	s *store.SQLiteStore,
	cfg *model.AppConfig,
	toasts *toast.Manager,
	surface *toast.StackSurface,
) Model {
	keys := DefaultKeyMap()
	p := appsync.New(s)

	return Model{
		currentView:  ViewList,
		store:        s,
		cfg:          cfg,
		keys:         keys,
		feed:         eventlist.New(s, keys, 80, 24),
		detail:       detail.New(s, keys, 80, 24),
		helpView:     helpview.New(keys, 80, 24),
		reminderForm: reminderform.New(80, 24),
		poller:       p,
		toasts:       toasts,
		surface:      surface,
		adapters:     buildAdapters(cfg),
	}
}

// Init loads the feed, registers configured sources, and subscribes to
// toast lifecycle events.
func (m Model) Init() tea.Cmd {
	m.toasts.Initialize()
	return tea.Batch(
		m.feed.Init(),
		m.registerSources(),
		m.waitForToastEvent(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.feed.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.reminderForm.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case sourcesRegisteredMsg:
		if msg.count == 0 {
			m.toasts.Warning(
				"No sources configured; edit ~/.config/caredesk/config.yaml",
			)
			return m, nil
		}
		// Sources are registered; now start the poller.
		return m, m.poller.Start()

	case appsync.SyncResultMsg:
		return m.handleSyncResult(msg)

	case toastChangedMsg:
		// State already advanced inside the manager; the re-render is
		// the point. Keep the subscription alive.
		return m, m.waitForToastEvent()

	case unreadCountMsg:
		m.unreadCount = msg.count
		return m, nil

	case eventlist.SelectedItemMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetLoading(true)
		if msg.IsLocal {
			return m, m.loadReminderDetail(msg.ID)
		}
		return m, m.loadEventDetail(msg.ID)

	case reminderform.ReminderCreatedMsg:
		m.currentView = ViewList
		return m, m.createReminder(msg.Reminder)

	case reminderform.ReminderUpdatedMsg:
		m.currentView = ViewList
		return m, m.updateReminder(msg.Reminder)

	case reminderform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case reminderSavedMsg:
		if msg.err != nil {
			m.toasts.Error(fmt.Sprintf("Could not save reminder: %v", msg.err))
			return m, nil
		}
		m.toasts.Success(msg.verb + ": " + msg.title)
		return m, m.feed.LoadItems()

	case reminderDeletedMsg:
		if msg.err != nil {
			m.toasts.Error(fmt.Sprintf("Could not delete reminder: %v", msg.err))
			return m, nil
		}
		m.toasts.Info("Reminder deleted")
		return m, m.feed.LoadItems()

	case reminderToggledMsg:
		if msg.err != nil {
			m.toasts.Error(fmt.Sprintf("Could not update reminder: %v", msg.err))
			return m, nil
		}
		return m, m.feed.LoadItems()

	case reminderEditReadyMsg:
		if msg.reminder == nil {
			m.currentView = ViewList
			return m, nil
		}
		return m, m.reminderForm.StartEdit(*msg.reminder)

	case detail.DetailLoadedMsg:
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case detail.BackMsg:
		m.currentView = ViewList
		return m, m.markAllRead()

	case detail.SuggestSlotMsg:
		return m, m.suggestSlot(msg.Practitioner)

	case detail.SlotSuggestedMsg:
		if !msg.Found {
			m.toasts.Warning("No free follow-up slot in the search window")
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case allReadMsg:
		if msg.err != nil {
			m.toasts.Error(fmt.Sprintf("Could not mark notifications read: %v", msg.err))
			return m, nil
		}
		m.unreadCount = 0
		return m, nil

	case tea.KeyMsg:
		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			m.poller.Stop()
			return m, tea.Quit

		case "q":
			if m.currentView == ViewList {
				m.poller.Stop()
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewReminderCreate ||
				m.currentView == ViewReminderEdit {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case "r":
			if m.currentView == ViewList {
				m.poller.RefreshAll()
				m.toasts.Info("Refreshing all sources")
				return m, m.feed.LoadItems()
			}

		case "m":
			if m.currentView == ViewList {
				return m, m.markAllRead()
			}

		case "n":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewReminderCreate
				prefill := ""
				if item := m.feed.SelectedItem(); item != nil {
					prefill = item.GetPatient()
				}
				return m, m.reminderForm.StartCreate(prefill)
			}

		case "e":
			if m.currentView == ViewList {
				item := m.feed.SelectedItem()
				if item != nil && item.IsLocal() {
					m.previousView = m.currentView
					m.currentView = ViewReminderEdit
					return m, m.loadReminderForEdit(item.GetID())
				}
			}

		case "x":
			if m.currentView == ViewList {
				item := m.feed.SelectedItem()
				if item != nil && item.IsLocal() {
					return m, m.toggleReminder(item.GetID())
				}
			}

		case "d":
			if m.currentView == ViewList {
				item := m.feed.SelectedItem()
				if item != nil && item.IsLocal() {
					return m, m.deleteReminder(item.GetID())
				}
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleSyncResult folds a completed sync into the UI: stale markers,
// toasts for failures and new arrivals, and a feed reload.
func (m Model) handleSyncResult(msg appsync.SyncResultMsg) (tea.Model, tea.Cmd) {
	src := string(msg.Source)

	if msg.AuthError != nil {
		m.feed.SetSourceStale(src, true)
		m.toasts.Error(msg.AuthError.Message)
	} else if msg.Error != nil {
		m.feed.SetSourceStale(src, true)
		m.toasts.Error(fmt.Sprintf("%s: sync failed", src))
	} else {
		m.feed.SetSourceStale(src, false)
		for _, e := range msg.NewEvents {
			m.showEventToast(e)
		}
	}

	return m, tea.Batch(
		m.feed.LoadItems(),
		m.poller.WaitForNextResult(),
		m.fetchUnreadCount(),
	)
}

// showEventToast raises a toast for a newly arrived event, matching the
// severity recorded on its notification row.
func (m Model) showEventToast(e model.Event) {
	message := e.Title
	switch e.Severity {
	case model.SeveritySuccess:
		m.toasts.Success(message)
	case model.SeverityWarning:
		m.toasts.Warning(message)
	case model.SeverityError:
		m.toasts.Error(message)
	default:
		m.toasts.Info(message)
	}
}

// waitForToastEvent returns a tea.Cmd that blocks on the toast
// manager's event channel and converts each transition into a message.
func (m Model) waitForToastEvent() tea.Cmd {
	events := m.toasts.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return toastChangedMsg{event: ev}
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.feed, cmd = m.feed.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewReminderCreate, ViewReminderEdit:
		m.reminderForm, cmd = m.reminderForm.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager, with the
// toast stack overlaid at the bottom.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	headerTitle := "CareDesk"
	if m.unreadCount > 0 {
		headerTitle = fmt.Sprintf("CareDesk [%d new]", m.unreadCount)
	}
	header := m.layout.RenderHeader(headerTitle, m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())
	toasts := toastview.Render(m.surface.Stack(), m.layout.ToastWidth())

	return m.layout.RenderWithFrame(header, content, statusBar, toasts)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.feed.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewReminderCreate, ViewReminderEdit:
		return m.reminderForm.View()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the combined sync state.
func (m Model) syncStatus() string {
	statuses := m.poller.GetStatuses()
	if len(statuses) == 0 {
		return "no sources"
	}

	running := 0
	errCount := 0
	var staleNames []string
	for _, s := range statuses {
		switch s.State {
		case appsync.SyncRunning:
			running++
		case appsync.SyncError:
			errCount++
			staleNames = append(staleNames, string(s.SourceType))
		}
	}

	if running > 0 {
		return fmt.Sprintf("syncing (%d)", running)
	}
	if errCount > 0 {
		return fmt.Sprintf("⚠ unreachable: %s", strings.Join(staleNames, ", "))
	}
	return "idle"
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "esc back | s suggest slot | j/k scroll"
	case ViewReminderCreate, ViewReminderEdit:
		return "enter submit | esc cancel"
	default:
		return "q quit | ? help | n reminder | / search | 1/2/3 source | tab sort"
	}
}

// allReadMsg reports the outcome of marking all notifications read.
type allReadMsg struct {
	err error
}

// markAllRead returns a command that clears the unread counter.
func (m Model) markAllRead() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return allReadMsg{err: s.MarkAllNotificationsRead(context.Background())}
	}
}

// fetchUnreadCount returns a tea.Cmd that queries the store for the
// number of unread notifications.
func (m Model) fetchUnreadCount() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		notifications, err := s.GetUnreadNotifications(context.Background())
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: len(notifications)}
	}
}
