package model

import "time"

// SourceType identifies the clinic system an event came from.
type SourceType string

const (
	SourceTypeClinic  SourceType = "clinic"
	SourceTypeRecords SourceType = "records"
	SourceTypeInbox   SourceType = "inbox"
)

// Event categories.
const (
	CategoryAppointment  = "appointment"
	CategoryRecord       = "record"
	CategoryPrescription = "prescription"
	CategoryReferral     = "referral"
)

// Appointment status lifecycle, normalized across sources.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Event severity levels, shared with the toast layer's tags.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Event is the unified representation of an item from any clinic source:
// an appointment, a medical record entry, a prescription, or an inbound
// referral.
type Event struct {
	// ID is the internal unique identifier for this event.
	ID string `json:"id"`

	// SourceType identifies which integration produced this event.
	SourceType SourceType `json:"source_type"`

	// SourceItemID is the item's identifier within its source system.
	SourceItemID string `json:"source_item_id"`

	// SourceID is the identifier for the configured source instance.
	SourceID string `json:"source_id"`

	// Category classifies the event (use Category* constants).
	Category string `json:"category"`

	// Title is the human-readable summary of the event.
	Title string `json:"title"`

	// Body is the full description text.
	Body string `json:"body"`

	// Status is the normalized status (use Status* constants).
	Status string `json:"status"`

	// Severity drives list and toast styling (use Severity* constants).
	Severity string `json:"severity"`

	// Patient is the display name of the patient involved, if any.
	Patient string `json:"patient"`

	// Practitioner is the display name of the treating doctor, if any.
	Practitioner string `json:"practitioner"`

	// OccursAt is when the underlying appointment or visit takes place.
	// Nil for events without an own schedule (records, referrals).
	OccursAt *time.Time `json:"occurs_at,omitempty"`

	// CreatedAt is when the item was created in the source system.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the item was last modified in the source system.
	UpdatedAt time.Time `json:"updated_at"`

	// FetchedAt is when this item was last retrieved from the source.
	FetchedAt time.Time `json:"fetched_at"`

	// RawData holds the original payload from the source system.
	RawData string `json:"raw_data"`
}

// IsUpcoming reports whether the event's appointment time is in the future.
func (e Event) IsUpcoming() bool {
	return e.OccursAt != nil && e.OccursAt.After(time.Now())
}
