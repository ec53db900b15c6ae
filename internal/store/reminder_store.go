package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rkrishnan/caredesk/internal/model"
)

// CreateReminder inserts a new reminder. Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateReminder(ctx context.Context, r model.Reminder) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("reminder title must not be empty")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Status == "" {
		r.Status = model.ReminderStatusOpen
	}

	// Default sort_order to max+1.
	if r.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM reminders")
		if err != nil {
			return fmt.Errorf("getting max sort_order: %w", err)
		}
		r.SortOrder = maxOrder + 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (
			id, title, notes, patient, status,
			due_at, sort_order,
			created_at, done_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Notes, r.Patient, r.Status,
		r.DueAt, r.SortOrder,
		r.CreatedAt, r.DoneAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating reminder: %w", err)
	}
	return nil
}

// UpdateReminder updates an existing reminder by ID.
func (s *SQLiteStore) UpdateReminder(ctx context.Context, r model.Reminder) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("reminder title must not be empty")
	}

	now := time.Now().UTC()
	r.UpdatedAt = now

	// Auto-manage done_at based on status.
	if r.Status == model.ReminderStatusDone && r.DoneAt == nil {
		r.DoneAt = &now
	} else if r.Status == model.ReminderStatusOpen {
		r.DoneAt = nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE reminders SET
			title = ?, notes = ?, patient = ?, status = ?,
			due_at = ?, sort_order = ?,
			done_at = ?, updated_at = ?
		WHERE id = ?`,
		r.Title, r.Notes, r.Patient, r.Status,
		r.DueAt, r.SortOrder,
		r.DoneAt, r.UpdatedAt,
		r.ID,
	)
	if err != nil {
		return fmt.Errorf("updating reminder %s: %w", r.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s not found", r.ID)
	}
	return nil
}

// DeleteReminder removes a reminder by ID.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("reminder %s not found", id)
	}
	return nil
}

// GetReminderByID retrieves a single reminder by ID.
func (s *SQLiteStore) GetReminderByID(
	ctx context.Context,
	id string,
) (*model.Reminder, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM reminders WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting reminder %s: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, fmt.Errorf("reminder %s not found", id)
	}

	r, err := scanReminder(rows)
	if err != nil {
		return nil, fmt.Errorf("getting reminder %s: %w", id, err)
	}

	return &r, nil
}

// GetReminders retrieves reminders matching the filter.
func (s *SQLiteStore) GetReminders(
	ctx context.Context,
	filter ReminderFilter,
) ([]model.Reminder, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Patient != nil {
		conditions = append(conditions, "patient = ?")
		args = append(args, *filter.Patient)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(title LIKE ? OR notes LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := "SELECT * FROM reminders"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	sortBy := "sort_order"
	if filter.SortBy != "" {
		allowedSorts := map[string]bool{
			"sort_order": true,
			"due_at":     true,
			"created_at": true,
			"updated_at": true,
			"title":      true,
		}
		if allowedSorts[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reminders: %w", err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}

	return reminders, rows.Err()
}

// ToggleReminderDone flips a reminder between open and done.
func (s *SQLiteStore) ToggleReminderDone(ctx context.Context, id string) error {
	r, err := s.GetReminderByID(ctx, id)
	if err != nil {
		return err
	}

	if r.IsDone() {
		r.Status = model.ReminderStatusOpen
		r.DoneAt = nil
	} else {
		r.Status = model.ReminderStatusDone
	}

	return s.UpdateReminder(ctx, *r)
}

// scanReminder scans a reminder row from a sqlx.Rows result set.
func scanReminder(rows *sqlx.Rows) (model.Reminder, error) {
	var (
		r         model.Reminder
		dueAt     *time.Time
		doneAt    *time.Time
		createdAt time.Time
		updatedAt time.Time
	)

	err := rows.Scan(
		&r.ID, &r.Title, &r.Notes, &r.Patient, &r.Status,
		&dueAt, &r.SortOrder,
		&createdAt, &doneAt, &updatedAt,
	)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("scanning reminder row: %w", err)
	}

	r.DueAt = dueAt
	r.DoneAt = doneAt
	r.CreatedAt = createdAt
	r.UpdatedAt = updatedAt

	return r, nil
}
