package clinic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/source"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Adapter) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "test-token")
	return server, NewAdapter(client, "main")
}

func TestFetchItemsMapsAppointments(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want Bearer test-token", got)
		}
		resp := AppointmentsResponse{
			Total: 2,
			Appointments: []Appointment{
				{
					ID:              "a-1",
					Patient:         "Priya Sharma",
					Practitioner:    "Dr. Rao",
					Reason:          "Annual checkup",
					Status:          "scheduled",
					ScheduledTime:   "2026-09-01T10:00:00Z",
					DurationMinutes: 30,
				},
				{
					ID:            "a-2",
					Patient:       "Arjun Mehta",
					Reason:        "Follow-up",
					Status:        "cancelled",
					ScheduledTime: "2026-09-01T11:00:00Z",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	result, err := adapter.FetchItems(context.Background(), source.FetchOptions{})
	if err != nil {
		t.Fatalf("FetchItems() error = %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(result.Items))
	}

	first := result.Items[0]
	if first.Title != "Priya Sharma: Annual checkup" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Status != model.StatusScheduled {
		t.Errorf("Status = %q, want %q", first.Status, model.StatusScheduled)
	}
	if first.Severity != model.SeverityInfo {
		t.Errorf("Severity = %q, want %q", first.Severity, model.SeverityInfo)
	}
	if first.OccursAt == nil {
		t.Fatal("OccursAt = nil, want parsed time")
	}

	second := result.Items[1]
	if second.Status != model.StatusCancelled {
		t.Errorf("Status = %q, want %q", second.Status, model.StatusCancelled)
	}
	if second.Severity != model.SeverityWarning {
		t.Errorf("Severity = %q, want %q", second.Severity, model.SeverityWarning)
	}
}

func TestFetchItemsReturnsAuthErrorOn401(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := adapter.FetchItems(context.Background(), source.FetchOptions{})
	if err == nil {
		t.Fatal("FetchItems() error = nil, want auth error")
	}
	if !source.IsAuthError(err) {
		t.Errorf("IsAuthError(%v) = false, want true", err)
	}
}

func TestGetItemDetailIncludesMetadata(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/appointments/a-9" {
			t.Errorf("path = %q", r.URL.Path)
		}
		appt := Appointment{
			ID:              "a-9",
			Patient:         "Neha Gupta",
			Practitioner:    "Dr. Iyer",
			Reason:          "Blood pressure review",
			Notes:           "Bring previous readings.",
			Status:          "completed",
			Room:            "3B",
			VisitType:       "in-person",
			DurationMinutes: 20,
		}
		json.NewEncoder(w).Encode(appt)
	})

	detail, err := adapter.GetItemDetail(context.Background(), "a-9")
	if err != nil {
		t.Fatalf("GetItemDetail() error = %v", err)
	}

	if detail.Severity != model.SeveritySuccess {
		t.Errorf("Severity = %q, want %q", detail.Severity, model.SeveritySuccess)
	}
	if detail.Metadata["Room"] != "3B" {
		t.Errorf("Metadata[Room] = %q, want 3B", detail.Metadata["Room"])
	}
	if detail.Metadata["Duration"] != "20 min" {
		t.Errorf("Metadata[Duration] = %q", detail.Metadata["Duration"])
	}
	if detail.RenderedBody != "Bring previous readings." {
		t.Errorf("RenderedBody = %q", detail.RenderedBody)
	}
}

func TestBusyIntervalsSortedByStart(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("practitioner"); got != "Dr. Rao" {
			t.Errorf("practitioner = %q", got)
		}
		resp := AppointmentsResponse{
			Total: 2,
			Appointments: []Appointment{
				{ID: "a-2", ScheduledTime: "2026-09-01T14:00:00Z", DurationMinutes: 45},
				{ID: "a-1", ScheduledTime: "2026-09-01T09:30:00Z"},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	intervals, err := adapter.BusyIntervals(context.Background(), "Dr. Rao", day)
	if err != nil {
		t.Fatalf("BusyIntervals() error = %v", err)
	}

	if len(intervals) != 2 {
		t.Fatalf("len(intervals) = %d, want 2", len(intervals))
	}
	if !intervals[0].Start.Before(intervals[1].Start) {
		t.Error("intervals not sorted by start time")
	}
	// Missing duration defaults to 30 minutes.
	if got := intervals[0].End.Sub(intervals[0].Start); got != 30*time.Minute {
		t.Errorf("default slot length = %v, want 30m", got)
	}
	if got := intervals[1].End.Sub(intervals[1].Start); got != 45*time.Minute {
		t.Errorf("slot length = %v, want 45m", got)
	}
}

func TestValidateConnection(t *testing.T) {
	_, adapter := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/me" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Profile{DisplayName: "Front Desk"})
	})

	msg, err := adapter.ValidateConnection(context.Background())
	if err != nil {
		t.Fatalf("ValidateConnection() error = %v", err)
	}
	if msg != "Connected as Front Desk" {
		t.Errorf("message = %q", msg)
	}
}
