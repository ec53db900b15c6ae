package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rkrishnan/caredesk/internal/model"
)

// reminderSavedMsg reports the outcome of a create or update.
type reminderSavedMsg struct {
	verb  string // "Reminder saved" / "Reminder updated"
	title string
	err   error
}

// reminderDeletedMsg reports the outcome of a delete.
type reminderDeletedMsg struct {
	err error
}

// reminderToggledMsg reports the outcome of a done/open toggle.
type reminderToggledMsg struct {
	err error
}

// reminderEditReadyMsg carries a loaded reminder into the edit form.
type reminderEditReadyMsg struct {
	reminder *model.Reminder
}

// createReminder returns a command that persists a new reminder.
func (m Model) createReminder(r model.Reminder) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.CreateReminder(context.Background(), r)
		return reminderSavedMsg{
			verb:  "Reminder saved",
			title: r.Title,
			err:   err,
		}
	}
}

// updateReminder returns a command that saves changes to a reminder.
func (m Model) updateReminder(r model.Reminder) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.UpdateReminder(context.Background(), r)
		return reminderSavedMsg{
			verb:  "Reminder updated",
			title: r.Title,
			err:   err,
		}
	}
}

// deleteReminder returns a command that removes a reminder.
func (m Model) deleteReminder(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.DeleteReminder(context.Background(), id)
		return reminderDeletedMsg{err: err}
	}
}

// toggleReminder returns a command that flips a reminder between open
// and done.
func (m Model) toggleReminder(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		err := s.ToggleReminderDone(context.Background(), id)
		return reminderToggledMsg{err: err}
	}
}

// loadReminderForEdit returns a command that fetches a reminder and
// hands it to the edit form.
func (m Model) loadReminderForEdit(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		r, err := s.GetReminderByID(context.Background(), id)
		if err != nil {
			return reminderEditReadyMsg{reminder: nil}
		}
		return reminderEditReadyMsg{reminder: r}
	}
}
