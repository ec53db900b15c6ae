package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/source"
	"github.com/rkrishnan/caredesk/internal/store"
	"github.com/rkrishnan/caredesk/tests/testutil"
)

// fakeSource returns a fixed set of events, or an error.
type fakeSource struct {
	sourceType source.SourceType
	events     []model.Event
	err        error
}

func (f *fakeSource) Type() source.SourceType { return f.sourceType }

func (f *fakeSource) ValidateConnection(context.Context) (string, error) {
	return "ok", nil
}

func (f *fakeSource) FetchItems(
	context.Context, source.FetchOptions,
) (*source.FetchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &source.FetchResult{
		Items: f.events,
		Total: len(f.events),
	}, nil
}

func (f *fakeSource) GetItemDetail(
	context.Context, string,
) (*source.ItemDetail, error) {
	return nil, errors.New("not implemented")
}

func testEvent(id, title, severity string) model.Event {
	now := time.Now()
	return model.Event{
		ID:           id,
		SourceType:   model.SourceTypeClinic,
		SourceItemID: id,
		SourceID:     "main",
		Category:     model.CategoryAppointment,
		Title:        title,
		Status:       model.StatusScheduled,
		Severity:     severity,
		CreatedAt:    now,
		UpdatedAt:    now,
		FetchedAt:    now,
	}
}

func TestFetchAndUpsertStoresEventsAndNotifications(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := New(s)

	src := &fakeSource{
		sourceType: source.SourceTypeClinic,
		events: []model.Event{
			testEvent("e-1", "Priya Sharma: Annual checkup", model.SeverityInfo),
			testEvent("e-2", "Arjun Mehta: Follow-up", model.SeverityWarning),
		},
	}
	cfg := model.SourceConfig{ID: "main", Type: "clinic", Enabled: true}
	p.RegisterSource(src, cfg)

	p.fetchAndUpsert(sourceEntry{src: src, cfg: cfg}, model.SourceTypeClinic)

	msg := receiveResult(t, p)
	if msg.Error != nil {
		t.Fatalf("result error = %v", msg.Error)
	}
	if msg.NewEventCount != 2 {
		t.Errorf("NewEventCount = %d, want 2", msg.NewEventCount)
	}
	if len(msg.NewEvents) != 2 {
		t.Errorf("len(NewEvents) = %d, want 2", len(msg.NewEvents))
	}

	ctx := context.Background()
	stored, err := s.GetEvents(ctx, store.EventFilter{Limit: 100})
	if err != nil {
		t.Fatalf("GetEvents() error = %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("stored events = %d, want 2", len(stored))
	}

	unread, err := s.GetUnreadNotifications(ctx)
	if err != nil {
		t.Fatalf("GetUnreadNotifications() error = %v", err)
	}
	if len(unread) != 2 {
		t.Fatalf("unread notifications = %d, want 2", len(unread))
	}
	for _, n := range unread {
		if n.Severity != model.SeverityInfo && n.Severity != model.SeverityWarning {
			t.Errorf("notification severity = %q", n.Severity)
		}
	}
}

func TestFetchAndUpsertSkipsKnownEvents(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := New(s)

	src := &fakeSource{
		sourceType: source.SourceTypeClinic,
		events: []model.Event{
			testEvent("e-1", "Priya Sharma: Annual checkup", model.SeverityInfo),
		},
	}
	cfg := model.SourceConfig{ID: "main", Type: "clinic", Enabled: true}
	p.RegisterSource(src, cfg)

	entry := sourceEntry{src: src, cfg: cfg}
	p.fetchAndUpsert(entry, model.SourceTypeClinic)
	receiveResult(t, p)

	// Second sync sees the same event; no new notification.
	p.fetchAndUpsert(entry, model.SourceTypeClinic)
	msg := receiveResult(t, p)
	if msg.NewEventCount != 0 {
		t.Errorf("NewEventCount = %d, want 0", msg.NewEventCount)
	}

	unread, err := s.GetUnreadNotifications(context.Background())
	if err != nil {
		t.Fatalf("GetUnreadNotifications() error = %v", err)
	}
	if len(unread) != 1 {
		t.Errorf("unread notifications = %d, want 1", len(unread))
	}
}

func TestFetchAndUpsertReportsAuthError(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := New(s)

	src := &fakeSource{
		sourceType: source.SourceTypeClinic,
		err: &source.AuthError{
			SourceType: source.SourceTypeClinic,
			Message:    "token expired",
		},
	}
	cfg := model.SourceConfig{ID: "main", Type: "clinic", Enabled: true}
	p.RegisterSource(src, cfg)

	p.fetchAndUpsert(sourceEntry{src: src, cfg: cfg}, model.SourceTypeClinic)

	msg := receiveResult(t, p)
	if msg.Error == nil {
		t.Fatal("result Error = nil, want auth error")
	}
	if msg.AuthError == nil {
		t.Fatal("AuthError = nil, want populated")
	}
	if msg.AuthError.SourceType != model.SourceTypeClinic {
		t.Errorf("AuthError.SourceType = %q", msg.AuthError.SourceType)
	}

	statuses := p.GetStatuses()
	if len(statuses) != 1 || statuses[0].State != SyncError {
		t.Errorf("statuses = %+v, want single SyncError", statuses)
	}
}

func TestRefreshAllReachesEverySource(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := New(s)

	p.RegisterSource(
		&fakeSource{sourceType: source.SourceTypeClinic},
		model.SourceConfig{
			ID: "main", Type: "clinic", Enabled: true,
			PollIntervalSec: 3600,
		},
	)
	p.RegisterSource(
		&fakeSource{sourceType: source.SourceTypeInbox},
		model.SourceConfig{
			ID: "referrals", Type: "inbox", Enabled: true,
			PollIntervalSec: 3600,
		},
	)

	p.Start()
	defer p.Stop()

	fetches := map[model.SourceType]int{}
	for i := 0; i < 2; i++ {
		fetches[receiveResult(t, p).Source]++
	}

	// Each source must re-fetch on a manual refresh, regardless of how
	// the scheduler interleaves the polling goroutines.
	p.RefreshAll()
	for i := 0; i < 2; i++ {
		fetches[receiveResult(t, p).Source]++
	}

	if fetches[model.SourceTypeClinic] != 2 || fetches[model.SourceTypeInbox] != 2 {
		t.Errorf("fetches per source = %v, want 2 each", fetches)
	}
}

func TestRefreshSourceTargetsOnlyThatSource(t *testing.T) {
	s := testutil.NewTestStore(t)
	p := New(s)

	p.RegisterSource(
		&fakeSource{sourceType: source.SourceTypeClinic},
		model.SourceConfig{
			ID: "main", Type: "clinic", Enabled: true,
			PollIntervalSec: 3600,
		},
	)
	p.RegisterSource(
		&fakeSource{sourceType: source.SourceTypeInbox},
		model.SourceConfig{
			ID: "referrals", Type: "inbox", Enabled: true,
			PollIntervalSec: 3600,
		},
	)

	p.Start()
	defer p.Stop()

	for i := 0; i < 2; i++ {
		receiveResult(t, p)
	}

	p.RefreshSource(model.SourceTypeInbox)
	if msg := receiveResult(t, p); msg.Source != model.SourceTypeInbox {
		t.Errorf("refreshed source = %q, want %q", msg.Source, model.SourceTypeInbox)
	}
}

func TestNotificationMessageByStatus(t *testing.T) {
	cancelled := testEvent("e-1", "Arjun Mehta: Follow-up", model.SeverityWarning)
	cancelled.Status = model.StatusCancelled
	if got := notificationMessage(cancelled); got != "Cancelled: Arjun Mehta: Follow-up" {
		t.Errorf("notificationMessage() = %q", got)
	}

	scheduled := testEvent("e-2", "Priya Sharma: Annual checkup", model.SeverityInfo)
	if got := notificationMessage(scheduled); got != "New appointment: Priya Sharma: Annual checkup" {
		t.Errorf("notificationMessage() = %q", got)
	}
}

func receiveResult(t *testing.T, p *Poller) SyncResultMsg {
	t.Helper()
	select {
	case msg := <-p.resultCh:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sync result")
		return SyncResultMsg{}
	}
}
