package toast

import (
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

// countingSurface records how many containers a manager asked for.
type countingSurface struct {
	created int
	stack   *Stack
}

func (s *countingSurface) CreateContainer() Container {
	s.created++
	s.stack = NewStack()
	return s.stack
}

func newTestManager() (*Manager, *countingSurface, *clock.Mock) {
	surface := &countingSurface{}
	mock := clock.NewMock()
	m := New(surface, WithClock(mock))
	return m, surface, mock
}

func TestShowBeforeInitializeCreatesOneContainer(t *testing.T) {
	m, surface, _ := newTestManager()

	m.Show("Saved", SeveritySuccess, 0)
	if surface.created != 1 {
		t.Fatalf("expected 1 container after lazy init, got %d", surface.created)
	}

	m.Initialize()
	m.Show("Saved again", SeveritySuccess, 0)
	if surface.created != 1 {
		t.Fatalf("expected container to be reused, got %d creations", surface.created)
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	m, surface, _ := newTestManager()

	m.Initialize()
	m.Initialize()
	m.Initialize()

	if surface.created != 1 {
		t.Fatalf("expected exactly 1 container, got %d", surface.created)
	}
}

func TestShowAppendsTaggedToast(t *testing.T) {
	m, surface, _ := newTestManager()

	m.Show("Saved", SeveritySuccess, 0)

	toasts := surface.stack.Toasts()
	if len(toasts) != 1 {
		t.Fatalf("expected 1 toast in container, got %d", len(toasts))
	}
	tst := toasts[0]
	if tst.Message != "Saved" {
		t.Fatalf("expected literal message %q, got %q", "Saved", tst.Message)
	}
	if tst.Severity != SeveritySuccess {
		t.Fatalf("expected severity %q, got %q", SeveritySuccess, tst.Severity)
	}
	if tst.State() != StateEntering {
		t.Fatalf("expected entering state right after Show, got %v", tst.State())
	}
	if tst.Duration != DefaultDuration {
		t.Fatalf("expected default duration %v, got %v", DefaultDuration, tst.Duration)
	}
}

func TestToastBecomesVisibleAfterEnterDelay(t *testing.T) {
	m, _, mock := newTestManager()

	tst := m.Show("hello", SeverityInfo, 0)
	mock.Add(EnterDelay)

	if tst.State() != StateVisible {
		t.Fatalf("expected visible after enter delay, got %v", tst.State())
	}
}

func TestToastDetachedAfterDurationPlusExit(t *testing.T) {
	m, surface, mock := newTestManager()

	tst := m.Show("bye", SeverityInfo, 0)

	mock.Add(EnterDelay)
	mock.Add(DefaultDuration - EnterDelay)
	if tst.State() != StateExiting {
		t.Fatalf("expected exiting once duration elapsed, got %v", tst.State())
	}
	if surface.stack.Len() != 1 {
		t.Fatalf("toast should stay attached during exit transition")
	}

	mock.Add(ExitDuration)
	if tst.State() != StateRemoved {
		t.Fatalf("expected removed after exit transition, got %v", tst.State())
	}
	if surface.stack.Len() != 0 {
		t.Fatalf("expected empty container, got %d toasts", surface.stack.Len())
	}
}

func TestSeverityHelpers(t *testing.T) {
	cases := []struct {
		name string
		show func(m *Manager, msg string, d ...time.Duration) *Toast
		want Severity
	}{
		{"success", func(m *Manager, msg string, d ...time.Duration) *Toast { return m.Success(msg, d...) }, SeveritySuccess},
		{"error", func(m *Manager, msg string, d ...time.Duration) *Toast { return m.Error(msg, d...) }, SeverityError},
		{"warning", func(m *Manager, msg string, d ...time.Duration) *Toast { return m.Warning(msg, d...) }, SeverityWarning},
		{"info", func(m *Manager, msg string, d ...time.Duration) *Toast { return m.Info(msg, d...) }, SeverityInfo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _, _ := newTestManager()

			tst := tc.show(m, "msg")
			if tst.Severity != tc.want {
				t.Fatalf("expected severity %q, got %q", tc.want, tst.Severity)
			}
			if tst.Duration != DefaultDuration {
				t.Fatalf("expected default duration, got %v", tst.Duration)
			}

			override := tc.show(m, "msg", 5*time.Second)
			if override.Duration != 5*time.Second {
				t.Fatalf("expected overridden duration, got %v", override.Duration)
			}
		})
	}
}

func TestShowAcceptsMalformedInput(t *testing.T) {
	m, surface, mock := newTestManager()

	tst := m.Show("", Severity("fatal"), 0)

	if tst.Message != "" {
		t.Fatalf("expected empty message kept as-is, got %q", tst.Message)
	}
	if tst.Severity != Severity("fatal") {
		t.Fatalf("expected literal severity %q, got %q", "fatal", tst.Severity)
	}
	if surface.stack.Len() != 1 {
		t.Fatalf("expected 1 toast in container, got %d", surface.stack.Len())
	}

	// The unknown severity runs the normal lifecycle.
	mock.Add(EnterDelay)
	if tst.State() != StateVisible {
		t.Fatalf("expected visible after enter delay, got %v", tst.State())
	}
	mock.Add(DefaultDuration - EnterDelay + ExitDuration)
	if tst.State() != StateRemoved {
		t.Fatalf("expected removed after full lifecycle, got %v", tst.State())
	}
	if surface.stack.Len() != 0 {
		t.Fatalf("expected empty container, got %d toasts", surface.stack.Len())
	}
}

func TestSequentialShowsPreserveCallOrder(t *testing.T) {
	m, surface, _ := newTestManager()

	const n = 5
	for i := 0; i < n; i++ {
		m.Show(fmt.Sprintf("toast %d", i), SeverityInfo, 0)
	}

	toasts := surface.stack.Toasts()
	if len(toasts) != n {
		t.Fatalf("expected %d toasts, got %d", n, len(toasts))
	}
	for i, tst := range toasts {
		want := fmt.Sprintf("toast %d", i)
		if tst.Message != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, tst.Message)
		}
	}
}

func TestRemovalOrderFollowsDurations(t *testing.T) {
	m, surface, mock := newTestManager()

	long := m.Show("long", SeverityInfo, 10*time.Second)
	short := m.Show("short", SeverityInfo, 1*time.Second)

	mock.Add(1*time.Second + ExitDuration)

	if short.State() != StateRemoved {
		t.Fatalf("expected short toast removed, got %v", short.State())
	}
	if long.State() != StateVisible {
		t.Fatalf("expected long toast still visible, got %v", long.State())
	}

	toasts := surface.stack.Toasts()
	if len(toasts) != 1 || toasts[0] != long {
		t.Fatalf("expected only the long toast to remain, got %d toasts", len(toasts))
	}
}

func TestDismissCancelsRemainingSchedule(t *testing.T) {
	m, surface, mock := newTestManager()

	tst := m.Show("dismiss me", SeverityWarning, 0)
	mock.Add(EnterDelay)

	tst.Dismiss()
	if tst.State() != StateExiting {
		t.Fatalf("expected exiting right after dismiss, got %v", tst.State())
	}

	mock.Add(ExitDuration)
	if tst.State() != StateRemoved {
		t.Fatalf("expected removed after exit transition, got %v", tst.State())
	}
	if surface.stack.Len() != 0 {
		t.Fatalf("expected empty container after dismissal")
	}

	// The original duration timer must not resurrect the toast.
	mock.Add(DefaultDuration)
	if tst.State() != StateRemoved {
		t.Fatalf("expected toast to stay removed, got %v", tst.State())
	}
}

func TestDismissIsIdempotent(t *testing.T) {
	m, surface, mock := newTestManager()

	tst := m.Show("twice", SeverityError, 0)
	tst.Dismiss()
	tst.Dismiss()

	mock.Add(ExitDuration)
	tst.Dismiss()

	if tst.State() != StateRemoved {
		t.Fatalf("expected removed, got %v", tst.State())
	}
	if surface.stack.Len() != 0 {
		t.Fatalf("expected empty container, got %d toasts", surface.stack.Len())
	}
}

func TestEventsReportEachTransition(t *testing.T) {
	m, _, mock := newTestManager()

	m.Show("observed", SeverityInfo, 0)
	mock.Add(DefaultDuration + ExitDuration)

	want := []State{StateEntering, StateVisible, StateExiting, StateRemoved}
	for i, expected := range want {
		select {
		case ev := <-m.Events():
			if ev.State != expected {
				t.Fatalf("event %d: expected %v, got %v", i, expected, ev.State)
			}
		default:
			t.Fatalf("missing event %d (%v)", i, expected)
		}
	}
}
