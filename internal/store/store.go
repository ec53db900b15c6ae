package store

import (
	"context"

	"github.com/rkrishnan/caredesk/internal/model"
)

// EventFilter controls filtering, sorting, and pagination for event queries.
type EventFilter struct {
	SourceType *string
	Category   *string
	Status     *string
	Query      *string
	SortBy     string
	SortDesc   bool
	Limit      int
	Offset     int
}

// ReminderFilter controls filtering, sorting, and pagination for
// reminder queries.
type ReminderFilter struct {
	Status  *string // "open", "done", or nil (all)
	Patient *string // exact patient name or nil (all)
	Query   *string // search title + notes
	SortBy  string  // "sort_order", "due_at", "created_at", "updated_at", "title"
	SortDesc bool
	Limit   int
	Offset  int
}

// Store defines the persistence interface for events, sources,
// notifications, and local reminders.
type Store interface {
	// === Events ===

	UpsertEvents(ctx context.Context, events []model.Event) error
	GetEvents(ctx context.Context, opts EventFilter) ([]model.Event, error)
	GetEventByID(ctx context.Context, id string) (*model.Event, error)

	// === Sources ===

	UpsertSource(ctx context.Context, src model.SourceConfig) error
	GetSources(ctx context.Context) ([]model.SourceConfig, error)
	DeleteSource(ctx context.Context, id string) error

	// === Notifications ===

	CreateNotification(ctx context.Context, n model.Notification) error
	GetUnreadNotifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error

	// === Reminders ===

	CreateReminder(ctx context.Context, r model.Reminder) error
	UpdateReminder(ctx context.Context, r model.Reminder) error
	DeleteReminder(ctx context.Context, id string) error
	GetReminderByID(ctx context.Context, id string) (*model.Reminder, error)
	GetReminders(ctx context.Context, filter ReminderFilter) ([]model.Reminder, error)
	ToggleReminderDone(ctx context.Context, id string) error
}
