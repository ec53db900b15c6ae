package ui

import (
	"strings"
	"testing"
)

func TestRenderWithFrameOmitsEmptyToastRow(t *testing.T) {
	l := NewLayout(80, 24)

	got := l.RenderWithFrame("header", "content", "status", "")
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("frame has %d rows, want 3: %q", len(lines), got)
	}
}

func TestRenderWithFrameAlignsToastsAboveStatusBar(t *testing.T) {
	l := NewLayout(40, 24)

	got := l.RenderWithFrame("header", "content", "status", "saved")
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("frame has %d rows, want 4: %q", len(lines), got)
	}

	toastRow := lines[2]
	if !strings.HasSuffix(strings.TrimRight(toastRow, " "), "saved") {
		t.Errorf("toast row = %q, want right-aligned toast column", toastRow)
	}
	if !strings.HasPrefix(toastRow, " ") {
		t.Errorf("toast row = %q, want left padding from right alignment", toastRow)
	}
	if strings.TrimRight(lines[3], " ") != "status" {
		t.Errorf("status row = %q, want status bar below toasts", lines[3])
	}
}

func TestToastWidthLeavesGutter(t *testing.T) {
	if got := NewLayout(80, 24).ToastWidth(); got != 76 {
		t.Errorf("ToastWidth() = %d, want 76", got)
	}
	if got := NewLayout(2, 24).ToastWidth(); got != 0 {
		t.Errorf("ToastWidth() on narrow terminal = %d, want 0", got)
	}
}
