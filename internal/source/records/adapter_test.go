package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/source"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, "frontdesk", "app-password")
	return NewAdapter(client, "ehr")
}

func TestFetchItemsMapsRecordsAndPrescriptions(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "frontdesk" || pass != "app-password" {
			t.Errorf("basic auth = %q/%q/%v", user, pass, ok)
		}
		resp := EntriesResponse{
			Total: 2,
			Entries: []Entry{
				{
					ID:        "r-1",
					Kind:      "record",
					Patient:   "Priya Sharma",
					Doctor:    "Dr. Rao",
					Diagnosis: "Hypertension",
					Notes:     "Recheck in 2 weeks.",
					Flagged:   true,
				},
				{
					ID:           "p-1",
					Kind:         "prescription",
					Patient:      "Arjun Mehta",
					Medication:   "Amlodipine",
					Dosage:       "5mg",
					Instructions: "Once daily with food.",
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

	record := result.Items[0]
	if record.Category != model.CategoryRecord {
		t.Errorf("Category = %q, want %q", record.Category, model.CategoryRecord)
	}
	if record.Title != "Priya Sharma: Hypertension" {
		t.Errorf("Title = %q", record.Title)
	}
	if record.Severity != model.SeverityWarning {
		t.Errorf("flagged entry Severity = %q, want %q",
			record.Severity, model.SeverityWarning)
	}

	rx := result.Items[1]
	if rx.Category != model.CategoryPrescription {
		t.Errorf("Category = %q, want %q", rx.Category, model.CategoryPrescription)
	}
	if rx.Title != "Rx Arjun Mehta: Amlodipine 5mg" {
		t.Errorf("Title = %q", rx.Title)
	}
	if rx.Severity != model.SeverityInfo {
		t.Errorf("Severity = %q, want %q", rx.Severity, model.SeverityInfo)
	}
}

func TestFetchItemsReturnsAuthErrorOnForbidden(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := adapter.FetchItems(context.Background(), source.FetchOptions{})
	if !source.IsAuthError(err) {
		t.Errorf("IsAuthError(%v) = false, want true", err)
	}
}

func TestGetItemDetailMetadata(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/entries/p-7" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Entry{
			ID:           "p-7",
			Kind:         "prescription",
			Patient:      "Neha Gupta",
			Medication:   "Metformin",
			Dosage:       "500mg",
			Instructions: "Twice daily.",
		})
	})

	detail, err := adapter.GetItemDetail(context.Background(), "p-7")
	if err != nil {
		t.Fatalf("GetItemDetail() error = %v", err)
	}
	if detail.Metadata["Medication"] != "Metformin" {
		t.Errorf("Metadata[Medication] = %q", detail.Metadata["Medication"])
	}
	if detail.RenderedBody != "Twice daily." {
		t.Errorf("RenderedBody = %q", detail.RenderedBody)
	}
}
