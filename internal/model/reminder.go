package model

import "time"

// Reminder status constants.
const (
	ReminderStatusOpen = "open"
	ReminderStatusDone = "done"
)

// Reminder is a local follow-up note created by a staff member,
// optionally tied to a patient and a due time.
type Reminder struct {
	ID        string     `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Notes     string     `json:"notes" db:"notes"`
	Patient   string     `json:"patient" db:"patient"`
	Status    string     `json:"status" db:"status"`
	DueAt     *time.Time `json:"due_at,omitempty" db:"due_at"`
	SortOrder int        `json:"sort_order" db:"sort_order"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	DoneAt    *time.Time `json:"done_at,omitempty" db:"done_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// IsDone reports whether the reminder has been completed.
func (r Reminder) IsDone() bool {
	return r.Status == ReminderStatusDone
}
