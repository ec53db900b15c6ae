package model

import "time"

// ListItem is the common interface for items displayed in the unified
// list view. Both Reminder (local) and Event (external) implement it.
type ListItem interface {
	GetID() string
	GetTitle() string
	GetBody() string
	GetStatus() string
	GetSeverity() string
	GetPatient() string
	GetSource() string
	IsLocal() bool
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
	GetDueAt() *time.Time
	IsOverdue() bool
}

// Reminder implements ListItem.

func (r Reminder) GetID() string          { return r.ID }
func (r Reminder) GetTitle() string       { return r.Title }
func (r Reminder) GetBody() string        { return r.Notes }
func (r Reminder) GetStatus() string      { return r.Status }
func (r Reminder) GetSeverity() string    { return SeverityInfo }
func (r Reminder) GetPatient() string     { return r.Patient }
func (r Reminder) GetSource() string      { return "local" }
func (r Reminder) IsLocal() bool          { return true }
func (r Reminder) GetCreatedAt() time.Time { return r.CreatedAt }
func (r Reminder) GetUpdatedAt() time.Time { return r.UpdatedAt }
func (r Reminder) GetDueAt() *time.Time   { return r.DueAt }
func (r Reminder) IsOverdue() bool {
	return r.DueAt != nil && r.DueAt.Before(time.Now()) && !r.IsDone()
}

// Event implements ListItem.

func (e Event) GetID() string           { return e.ID }
func (e Event) GetTitle() string        { return e.Title }
func (e Event) GetBody() string         { return e.Body }
func (e Event) GetStatus() string       { return e.Status }
func (e Event) GetSeverity() string     { return e.Severity }
func (e Event) GetPatient() string      { return e.Patient }
func (e Event) GetSource() string       { return string(e.SourceType) }
func (e Event) IsLocal() bool           { return false }
func (e Event) GetCreatedAt() time.Time { return e.CreatedAt }
func (e Event) GetUpdatedAt() time.Time { return e.UpdatedAt }
func (e Event) GetDueAt() *time.Time    { return e.OccursAt }
func (e Event) IsOverdue() bool         { return false }
