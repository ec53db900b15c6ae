package testutil

import (
	"context"
	"testing"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedEvents upserts the given events into the store, failing the test
// on error.
func SeedEvents(t *testing.T, s *store.SQLiteStore, events ...model.Event) {
	t.Helper()

	if err := s.UpsertEvents(context.Background(), events); err != nil {
		t.Fatalf("seeding events: %v", err)
	}
}

// SeedNotification records an unread notification for the given event,
// failing the test on error.
func SeedNotification(
	t *testing.T,
	s *store.SQLiteStore,
	n model.Notification,
) {
	t.Helper()

	if err := s.CreateNotification(context.Background(), n); err != nil {
		t.Fatalf("seeding notification: %v", err)
	}
}
