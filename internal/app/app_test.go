package app

import (
	"errors"
	"testing"

	"github.com/benbjohnson/clock"

	"github.com/rkrishnan/caredesk/internal/toast"
	"github.com/rkrishnan/caredesk/tests/testutil"
)

func newTestModel(t *testing.T) (Model, *toast.StackSurface) {
	s := testutil.NewTestStore(t)
	surface := toast.NewStackSurface()
	toasts := toast.New(surface, toast.WithClock(clock.NewMock()))
	return New(s, nil, toasts, surface), surface
}

func TestAllReadFailureKeepsUnreadCount(t *testing.T) {
	m, surface := newTestModel(t)
	m.unreadCount = 3

	updated, _ := m.Update(allReadMsg{err: errors.New("disk I/O error")})
	got := updated.(Model)

	if got.unreadCount != 3 {
		t.Errorf("unreadCount = %d, want 3 kept on failure", got.unreadCount)
	}
	if surface.Stack().Len() != 1 {
		t.Fatalf("toasts = %d, want 1 error toast", surface.Stack().Len())
	}
	if tst := surface.Stack().Toasts()[0]; tst.Severity != toast.SeverityError {
		t.Errorf("toast severity = %q, want %q", tst.Severity, toast.SeverityError)
	}
}

func TestAllReadSuccessClearsUnreadCount(t *testing.T) {
	m, _ := newTestModel(t)
	m.unreadCount = 3

	updated, _ := m.Update(allReadMsg{})
	if got := updated.(Model); got.unreadCount != 0 {
		t.Errorf("unreadCount = %d, want 0", got.unreadCount)
	}
}
