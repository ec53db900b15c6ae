package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/source"
	"github.com/rkrishnan/caredesk/internal/store"
)

// SyncState represents the current state of a source sync operation.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the sync state for a single source.
type SyncStatus struct {
	SourceType model.SourceType
	State      SyncState
	LastSync   time.Time
	Error      error
}

// SyncResultMsg is a tea.Msg sent when a sync operation completes.
type SyncResultMsg struct {
	Events        []model.Event
	Source        model.SourceType
	Error         error
	AuthError     *AuthErrorMsg
	NewEventCount int

	// NewEvents holds the events not previously seen, so the UI can
	// raise a toast per arrival.
	NewEvents []model.Event
}

// SyncStatusMsg is a tea.Msg with the current statuses of all sources.
type SyncStatusMsg struct {
	Statuses []SyncStatus
}

// AuthErrorMsg is a tea.Msg sent when a source returns an authentication error.
type AuthErrorMsg struct {
	SourceType model.SourceType
	Message    string
}

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

// sourceEntry holds a registered source, its configuration, and its
// manual-refresh trigger. Each source owns its trigger channel so a
// refresh aimed at one source can never be consumed by another's
// polling goroutine.
type sourceEntry struct {
	src     source.Source
	cfg     model.SourceConfig
	trigger chan struct{}
}

// Poller orchestrates background polling of registered sources.
type Poller struct {
	store    store.Store
	sources  []sourceEntry
	statuses map[model.SourceType]*SyncStatus
	resultCh chan SyncResultMsg
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
}

// New creates a new Poller with the given store.
func New(s store.Store) *Poller {
	return &Poller{
		store:    s,
		statuses: make(map[model.SourceType]*SyncStatus),
		resultCh: make(chan SyncResultMsg, 16),
		stopCh:   make(chan struct{}),
	}
}

// RegisterSource adds a source adapter and its configuration to the poller.
func (p *Poller) RegisterSource(src source.Source, cfg model.SourceConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := model.SourceType(cfg.Type)
	p.sources = append(p.sources, sourceEntry{
		src:     src,
		cfg:     cfg,
		trigger: make(chan struct{}, 1),
	})
	p.statuses[st] = &SyncStatus{
		SourceType: st,
		State:      SyncIdle,
	}
}

// Start returns a tea.Cmd that starts all polling goroutines and
// subscribes to results. The returned command waits on the result
// channel and returns SyncResultMsg messages to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	// Start a polling goroutine for each source
	for _, entry := range p.sources {
		go p.pollSource(entry)
	}

	// Return a subscription command that listens for results
	return p.waitForResult()
}

// Stop halts all polling goroutines.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// RefreshAll triggers an immediate poll of all registered sources.
func (p *Poller) RefreshAll() tea.Cmd {
	p.mu.Lock()
	sources := make([]sourceEntry, len(p.sources))
	copy(sources, p.sources)
	p.mu.Unlock()

	for _, entry := range sources {
		select {
		case entry.trigger <- struct{}{}:
		default:
			// A refresh is already pending for this source
		}
	}

	return nil
}

// RefreshSource triggers an immediate poll of a single source type.
func (p *Poller) RefreshSource(sourceType model.SourceType) tea.Cmd {
	p.mu.Lock()
	sources := make([]sourceEntry, len(p.sources))
	copy(sources, p.sources)
	p.mu.Unlock()

	for _, entry := range sources {
		if model.SourceType(entry.cfg.Type) != sourceType {
			continue
		}
		select {
		case entry.trigger <- struct{}{}:
		default:
		}
	}
	return nil
}

// GetStatuses returns the current sync status of all registered sources.
func (p *Poller) GetStatuses() []SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]SyncStatus, 0, len(p.statuses))
	for _, s := range p.statuses {
		statuses = append(statuses, *s)
	}
	return statuses
}

// pollSource runs the polling loop for a single source.
func (p *Poller) pollSource(entry sourceEntry) {
	interval := time.Duration(entry.cfg.PollIntervalSec) * time.Second
	if interval <= 0 {
		interval = 120 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	st := model.SourceType(entry.cfg.Type)

	// Do an initial fetch immediately
	p.fetchAndUpsert(entry, st)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetchAndUpsert(entry, st)
		case <-entry.trigger:
			p.fetchAndUpsert(entry, st)
		}
	}
}

// fetchAndUpsert performs a single fetch operation, upserts results to
// the store, records notifications for new arrivals, and sends a
// SyncResultMsg on the result channel.
func (p *Poller) fetchAndUpsert(entry sourceEntry, st model.SourceType) {
	p.setStatus(st, SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	result, err := entry.src.FetchItems(ctx, source.FetchOptions{
		Page:     1,
		PageSize: 50,
	})

	if err != nil {
		p.setStatus(st, SyncError, err)

		// Detect auth errors and emit a specific message.
		if source.IsAuthError(err) {
			p.sendResult(SyncResultMsg{
				Source: st,
				Error:  err,
				AuthError: &AuthErrorMsg{
					SourceType: st,
					Message: fmt.Sprintf(
						"%s: authentication expired, check credentials",
						st,
					),
				},
			})
			return
		}

		p.sendResult(SyncResultMsg{Source: st, Error: err})
		return
	}

	events := result.Items

	// Detect new events by checking which ones the store has not seen.
	var newIDs map[string]bool
	if len(events) > 0 {
		existing, _ := p.store.GetEvents(ctx, store.EventFilter{
			Limit: 1000,
		})
		existingIDs := make(map[string]bool, len(existing))
		for _, e := range existing {
			existingIDs[e.ID] = true
		}
		newIDs = make(map[string]bool)
		for _, e := range events {
			if !existingIDs[e.ID] {
				newIDs[e.ID] = true
			}
		}
	}

	if len(events) > 0 {
		if upsertErr := p.store.UpsertEvents(ctx, events); upsertErr != nil {
			p.setStatus(st, SyncError, upsertErr)
			p.sendResult(SyncResultMsg{Source: st, Error: upsertErr})
			return
		}
	}

	// Record notifications for new events only, carrying the severity
	// the toast layer will display them with.
	var newEvents []model.Event
	for _, e := range events {
		if !newIDs[e.ID] {
			continue
		}
		newEvents = append(newEvents, e)
		notification := model.Notification{
			EventID:    e.ID,
			SourceType: st,
			Message:    notificationMessage(e),
			Severity:   e.Severity,
			CreatedAt:  time.Now(),
		}
		_ = p.store.CreateNotification(ctx, notification)
	}

	p.setStatus(st, SyncIdle, nil)
	p.sendResult(SyncResultMsg{
		Events:        events,
		Source:        st,
		NewEventCount: len(newEvents),
		NewEvents:     newEvents,
	})
}

// notificationMessage builds the alert text for a newly seen event.
func notificationMessage(e model.Event) string {
	switch e.Status {
	case model.StatusCancelled:
		return fmt.Sprintf("Cancelled: %s", e.Title)
	case model.StatusCompleted:
		if e.Category == model.CategoryAppointment {
			return fmt.Sprintf("Completed: %s", e.Title)
		}
	}
	return fmt.Sprintf("New %s: %s", e.Category, e.Title)
}

// setStatus updates the sync status for a source type.
func (p *Poller) setStatus(st model.SourceType, state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.statuses[st]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state == SyncIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// sendResult sends a SyncResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg SyncResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

// waitForResult returns a tea.Cmd that waits for the next result from
// the result channel.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next sync result.
// This should be called after processing a SyncResultMsg to continue
// listening for future results.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
