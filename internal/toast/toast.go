package toast

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Severity classifies a toast for styling purposes only. Unknown values
// are accepted and rendered as-is.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// State is the position of a toast in its display lifecycle. The machine
// is linear: created, entering, visible, exiting, removed. Dismissal
// fast-forwards to exiting; there is no other branching.
type State int

const (
	StateCreated State = iota
	StateEntering
	StateVisible
	StateExiting
	StateRemoved
)

// String returns the lowercase name of the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateEntering:
		return "entering"
	case StateVisible:
		return "visible"
	case StateExiting:
		return "exiting"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Toast is a single transient notification. Instances are created by a
// Manager and owned by it; state transitions happen on the manager's
// timers or through Dismiss.
type Toast struct {
	// ID is the unique identifier for this toast.
	ID string

	// Message is the literal text shown to the user.
	Message string

	// Severity selects the visual treatment.
	Severity Severity

	// Duration is how long the toast stays visible before its exit
	// transition begins.
	Duration time.Duration

	// CreatedAt is when Show was called.
	CreatedAt time.Time

	m *Manager

	// Guarded by m.mu.
	state       State
	enterTimer  *clock.Timer
	hideTimer   *clock.Timer
	removeTimer *clock.Timer
}

// State returns the toast's current lifecycle state.
func (t *Toast) State() State {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.state
}

// Dismiss cancels the remaining display schedule and begins the exit
// transition immediately. Calling it on a toast that is already exiting
// or removed has no effect.
func (t *Toast) Dismiss() {
	t.m.beginExit(t)
}
