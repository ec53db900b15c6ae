package toastview

import (
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/rkrishnan/caredesk/internal/toast"
)

func TestRenderEmptyStack(t *testing.T) {
	if got := Render(toast.NewStack(), 60); got != "" {
		t.Errorf("Render(empty) = %q, want empty string", got)
	}
	if got := Render(nil, 60); got != "" {
		t.Errorf("Render(nil) = %q, want empty string", got)
	}
}

func TestRenderSnapshot(t *testing.T) {
	mock := clock.NewMock()
	surface := toast.NewStackSurface()
	mgr := toast.New(surface, toast.WithClock(mock))
	mgr.Initialize()

	mgr.Info("Synced 12 appointments")
	mgr.Success("Reminder saved")
	mgr.Warning("Cancelled: Arjun Mehta: Follow-up")
	mgr.Error("records: authentication expired, check credentials")

	// Advance past the entrance delay so all toasts are fully visible.
	mock.Add(20 * time.Millisecond)

	snaps.MatchSnapshot(t, Render(surface.Stack(), 60))
}

func TestRenderUnknownSeverityFallsBack(t *testing.T) {
	mock := clock.NewMock()
	surface := toast.NewStackSurface()
	mgr := toast.New(surface, toast.WithClock(mock))

	mgr.Show("that went badly", toast.Severity("fatal"), 0)
	mock.Add(20 * time.Millisecond)

	got := Render(surface.Stack(), 60)
	if !strings.Contains(got, "that went badly") {
		t.Errorf("Render() = %q, want literal message", got)
	}
	if !strings.Contains(got, "i ") {
		t.Errorf("Render() = %q, want fallback label", got)
	}
}

func TestRenderSkipsRemovedToasts(t *testing.T) {
	mock := clock.NewMock()
	surface := toast.NewStackSurface()
	mgr := toast.New(surface, toast.WithClock(mock))

	mgr.Info("short lived", 50*time.Millisecond)
	mock.Add(20 * time.Millisecond)
	if got := Render(surface.Stack(), 60); got == "" {
		t.Fatal("Render() empty while toast visible")
	}

	// Past duration plus exit transition the toast is detached.
	mock.Add(400 * time.Millisecond)
	if got := Render(surface.Stack(), 60); got != "" {
		t.Errorf("Render() = %q after removal, want empty", got)
	}
}
