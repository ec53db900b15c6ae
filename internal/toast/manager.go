package toast

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

// Default display timings. The entrance delay gives the renderer one
// frame to draw the toast in its entering state before it becomes
// visible; the exit duration matches the fade-out transition.
const (
	DefaultDuration = 3 * time.Second
	EnterDelay      = 10 * time.Millisecond
	ExitDuration    = 300 * time.Millisecond
)

// Event reports a toast state transition to subscribers.
type Event struct {
	Toast *Toast
	State State
}

// Manager owns the shared toast container and drives each toast through
// its lifecycle. Construct one per program and hand it to whichever
// components need to raise notifications; there is no package-level
// singleton.
type Manager struct {
	surface Surface
	clk     clock.Clock
	events  chan Event

	defaultDuration time.Duration
	enterDelay      time.Duration
	exitDuration    time.Duration

	mu        sync.Mutex
	container Container
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock. Tests pass a mock clock to step
// through toast phases deterministically.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) { m.clk = c }
}

// WithDefaultDuration changes how long a toast stays visible when the
// caller does not override the duration.
func WithDefaultDuration(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.defaultDuration = d
		}
	}
}

// WithEnterDelay changes the delay before a toast becomes visible.
func WithEnterDelay(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.enterDelay = d
		}
	}
}

// WithExitDuration changes the exit transition length.
func WithExitDuration(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.exitDuration = d
		}
	}
}

// New creates a Manager rendering onto the given surface. The container
// itself is created lazily on the first Initialize or Show call.
func New(surface Surface, opts ...Option) *Manager {
	m := &Manager{
		surface:         surface,
		clk:             clock.New(),
		events:          make(chan Event, 64),
		defaultDuration: DefaultDuration,
		enterDelay:      EnterDelay,
		exitDuration:    ExitDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize ensures the shared container exists on the surface. It is
// idempotent: repeated calls never create a second container.
func (m *Manager) Initialize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureContainer()
}

// ensureContainer creates the container on first use. Callers must hold
// m.mu.
func (m *Manager) ensureContainer() {
	if m.container == nil {
		m.container = m.surface.CreateContainer()
	}
}

// Container returns the shared container, or nil before initialization.
func (m *Manager) Container() Container {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.container
}

// Show appends a toast to the container and schedules its lifecycle:
// it becomes visible after the entrance delay, starts exiting after
// duration has elapsed from creation, and is detached once the exit
// transition completes. A duration of zero or less selects the default.
//
// Show never fails; empty messages and unknown severities are shown
// as-is. The returned handle can be ignored for fire-and-forget use, or
// kept to observe state and dismiss early.
func (m *Manager) Show(message string, severity Severity, duration time.Duration) *Toast {
	if duration <= 0 {
		duration = m.defaultDuration
	}

	t := &Toast{
		ID:        uuid.New().String(),
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		CreatedAt: m.clk.Now(),
		m:         m,
		state:     StateEntering,
	}

	m.mu.Lock()
	m.ensureContainer()
	m.container.Append(t)
	t.enterTimer = m.clk.AfterFunc(m.enterDelay, func() {
		m.markVisible(t)
	})
	t.hideTimer = m.clk.AfterFunc(duration, func() {
		m.beginExit(t)
	})
	m.mu.Unlock()

	m.emit(t, StateEntering)
	return t
}

// Info shows an informational toast. An optional duration overrides the
// default display time.
func (m *Manager) Info(message string, duration ...time.Duration) *Toast {
	return m.Show(message, SeverityInfo, override(duration))
}

// Success shows a success toast.
func (m *Manager) Success(message string, duration ...time.Duration) *Toast {
	return m.Show(message, SeveritySuccess, override(duration))
}

// Warning shows a warning toast.
func (m *Manager) Warning(message string, duration ...time.Duration) *Toast {
	return m.Show(message, SeverityWarning, override(duration))
}

// Error shows an error toast.
func (m *Manager) Error(message string, duration ...time.Duration) *Toast {
	return m.Show(message, SeverityError, override(duration))
}

// Events returns the transition event channel. Sends never block: when
// no one is draining the channel, events are dropped rather than stalling
// a timer callback.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// markVisible moves an entering toast to the visible state.
func (m *Manager) markVisible(t *Toast) {
	m.mu.Lock()
	if t.state != StateEntering {
		m.mu.Unlock()
		return
	}
	t.state = StateVisible
	m.mu.Unlock()

	m.emit(t, StateVisible)
}

// beginExit cancels any pending phase timers and starts the exit
// transition. Safe to call from any state; exiting and removed toasts
// are left alone.
func (m *Manager) beginExit(t *Toast) {
	m.mu.Lock()
	if t.state >= StateExiting {
		m.mu.Unlock()
		return
	}
	if t.enterTimer != nil {
		t.enterTimer.Stop()
	}
	if t.hideTimer != nil {
		t.hideTimer.Stop()
	}
	t.state = StateExiting
	t.removeTimer = m.clk.AfterFunc(m.exitDuration, func() {
		m.remove(t)
	})
	m.mu.Unlock()

	m.emit(t, StateExiting)
}

// remove detaches the toast from the container after its exit
// transition has completed.
func (m *Manager) remove(t *Toast) {
	m.mu.Lock()
	if t.state == StateRemoved {
		m.mu.Unlock()
		return
	}
	t.state = StateRemoved
	m.container.Remove(t)
	m.mu.Unlock()

	m.emit(t, StateRemoved)
}

// emit sends a transition event without blocking.
func (m *Manager) emit(t *Toast, state State) {
	select {
	case m.events <- Event{Toast: t, State: state}:
	default:
		// Drop if no subscriber is keeping up.
	}
}

// override returns the first duration if one was supplied, else zero
// (which Show maps to the default).
func override(d []time.Duration) time.Duration {
	if len(d) > 0 {
		return d[0]
	}
	return 0
}
