package model

import "time"

// Notification represents an alert surfaced to the user about a new or
// changed clinic event. Rows back the unread counter and history; the
// live toast a notification triggers is ephemeral and never persisted.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// EventID links this notification to the originating event.
	EventID string `json:"event_id"`

	// SourceType identifies which integration generated this notification.
	SourceType SourceType `json:"source_type"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Severity matches the toast severity used when it was raised.
	Severity string `json:"severity"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
