package inbox

import (
	"testing"
	"time"

	"github.com/rkrishnan/caredesk/internal/model"
)

func TestEnvelopeToEventSeverityFromFlags(t *testing.T) {
	adapter := &Adapter{sourceID: "referrals"}

	tests := []struct {
		name         string
		flags        []string
		wantSeverity string
		wantStatus   string
	}{
		{
			name:         "unread message",
			flags:        nil,
			wantSeverity: model.SeverityInfo,
			wantStatus:   model.StatusScheduled,
		},
		{
			name:         "flagged message",
			flags:        []string{`\Flagged`},
			wantSeverity: model.SeverityWarning,
			wantStatus:   model.StatusScheduled,
		},
		{
			name:         "seen message",
			flags:        []string{`\Seen`},
			wantSeverity: model.SeverityInfo,
			wantStatus:   model.StatusCompleted,
		},
		{
			name:         "seen and flagged",
			flags:        []string{`\Seen`, `\Flagged`},
			wantSeverity: model.SeverityWarning,
			wantStatus:   model.StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Envelope{
				MessageID: "<ref-123@partner.example>",
				Subject:   "Referral: Priya Sharma",
				From:      "Dr. Kapoor",
				Date:      time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
				Flags:     tt.flags,
				UID:       42,
			}

			event := adapter.envelopeToEvent(env)

			if event.Severity != tt.wantSeverity {
				t.Errorf("Severity = %q, want %q", event.Severity, tt.wantSeverity)
			}
			if event.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", event.Status, tt.wantStatus)
			}
			if event.Category != model.CategoryReferral {
				t.Errorf("Category = %q, want %q",
					event.Category, model.CategoryReferral)
			}
			if event.SourceItemID != "42" {
				t.Errorf("SourceItemID = %q, want 42", event.SourceItemID)
			}
		})
	}
}

func TestEnvelopeToEventIDFallsBackToUID(t *testing.T) {
	adapter := &Adapter{sourceID: "referrals"}

	event := adapter.envelopeToEvent(Envelope{UID: 7})
	if event.ID != "inbox-uid-7" {
		t.Errorf("ID = %q, want inbox-uid-7", event.ID)
	}

	event = adapter.envelopeToEvent(Envelope{
		MessageID: "<abc.123@mail>", UID: 7,
	})
	if event.ID != "inbox-abc.123@mail" {
		t.Errorf("ID = %q, want inbox-abc.123@mail", event.ID)
	}
}

func TestPatientFromSubject(t *testing.T) {
	tests := []struct {
		subject string
		want    string
	}{
		{"Referral: Priya Sharma", "Priya Sharma"},
		{"Referral for Arjun Mehta - cardiology", "Arjun Mehta"},
		{"REFERRAL Neha Gupta (urgent)", "Neha Gupta"},
		{"Lunch on Friday?", ""},
	}

	for _, tt := range tests {
		if got := patientFromSubject(tt.subject); got != tt.want {
			t.Errorf("patientFromSubject(%q) = %q, want %q",
				tt.subject, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	html := "<html><body><p>Dear colleague,</p>\n<p>Please see the " +
		"attached referral for <b>Priya&nbsp;Sharma</b>.</p></body></html>"

	got := stripHTML(html)
	want := "Dear colleague,\nPlease see the attached referral for Priya Sharma."
	if got != want {
		t.Errorf("stripHTML() = %q, want %q", got, want)
	}
}
