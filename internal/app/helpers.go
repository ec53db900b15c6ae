package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/schedule"
	"github.com/rkrishnan/caredesk/internal/source"
	"github.com/rkrishnan/caredesk/internal/ui/detail"
)

// loadEventDetail returns a command that loads a stored event by ID.
// Extended detail from the source (full bodies, metadata) is best
// effort: if the source is unreachable the stored copy is shown.
func (m Model) loadEventDetail(eventID string) tea.Cmd {
	s := m.store
	adapters := m.adapters
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(
			context.Background(), 15*time.Second,
		)
		defer cancel()

		event, err := s.GetEventByID(ctx, eventID)
		if err != nil || event == nil {
			return detail.DetailLoadedMsg{Detail: nil}
		}

		for _, entry := range adapters.entries {
			if entry.cfg.ID != event.SourceID {
				continue
			}
			if d, err := entry.src.GetItemDetail(ctx, event.SourceItemID); err == nil {
				return detail.DetailLoadedMsg{Detail: d}
			}
			break
		}

		return detail.DetailLoadedMsg{Detail: eventToItemDetail(event)}
	}
}

// loadReminderDetail returns a command that loads a local reminder and
// presents it through the shared detail view.
func (m Model) loadReminderDetail(id string) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		r, err := s.GetReminderByID(context.Background(), id)
		if err != nil || r == nil {
			return detail.DetailLoadedMsg{Detail: nil}
		}
		return detail.DetailLoadedMsg{Detail: reminderToItemDetail(r)}
	}
}

// eventToItemDetail converts a stored event into a source.ItemDetail
// for display when no live source detail is available.
func eventToItemDetail(event *model.Event) *source.ItemDetail {
	return &source.ItemDetail{
		Event:        *event,
		RenderedBody: event.Body,
		Metadata:     make(map[string]string),
	}
}

// reminderToItemDetail presents a local reminder in the event detail
// shape.
func reminderToItemDetail(r *model.Reminder) *source.ItemDetail {
	event := model.Event{
		ID:        r.ID,
		Category:  "reminder",
		Title:     r.Title,
		Body:      r.Notes,
		Status:    r.Status,
		Severity:  model.SeverityInfo,
		Patient:   r.Patient,
		OccursAt:  r.DueAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	return &source.ItemDetail{
		Event:        event,
		RenderedBody: r.Notes,
		Metadata:     make(map[string]string),
	}
}

// slotLookupDays caps how many days of the practitioner's calendar are
// fetched when hunting for a free slot.
const slotLookupDays = 7

// suggestSlot returns a command that finds the practitioner's next free
// appointment slot inside the configured working hours.
func (m Model) suggestSlot(practitioner string) tea.Cmd {
	clinicAdapter := m.adapters.clinic
	cfg := m.cfg
	return func() tea.Msg {
		if clinicAdapter == nil {
			return detail.SlotSuggestedMsg{Found: false}
		}

		ctx, cancel := context.WithTimeout(
			context.Background(), 30*time.Second,
		)
		defer cancel()

		week := workWeekFromConfig(cfg)
		from := time.Now()

		var busy []schedule.Interval
		for i := 0; i < slotLookupDays; i++ {
			day := from.AddDate(0, 0, i)
			if !dayIncluded(week, day.Weekday()) {
				continue
			}
			intervals, err := clinicAdapter.BusyIntervals(ctx, practitioner, day)
			if err != nil {
				return detail.SlotSuggestedMsg{Found: false}
			}
			busy = append(busy, intervals...)
		}

		duration := 30 * time.Minute
		if cfg != nil && cfg.Clinic.SlotMinutes > 0 {
			duration = time.Duration(cfg.Clinic.SlotMinutes) * time.Minute
		}

		// Only search the window we have calendar data for.
		week.DaysAhead = slotLookupDays
		slot, ok := schedule.NextAvailableSlot(busy, duration, from, week)
		return detail.SlotSuggestedMsg{Slot: slot, Found: ok}
	}
}

// workWeekFromConfig builds the slot-search parameters from the clinic
// configuration, falling back to the standard week.
func workWeekFromConfig(cfg *model.AppConfig) schedule.WorkWeek {
	if cfg == nil {
		return schedule.DefaultWorkWeek()
	}

	week := schedule.DefaultWorkWeek()
	if cfg.Clinic.WorkStartHour > 0 {
		week.StartHour = cfg.Clinic.WorkStartHour
	}
	if cfg.Clinic.WorkEndHour > 0 {
		week.EndHour = cfg.Clinic.WorkEndHour
	}
	if days := cfg.Clinic.WorkWeekdays(); len(days) > 0 {
		week.Days = week.Days[:0]
		for _, d := range days {
			week.Days = append(week.Days, time.Weekday(d))
		}
	}
	if cfg.Clinic.SearchDaysAhead > 0 {
		week.DaysAhead = cfg.Clinic.SearchDaysAhead
	}
	return week
}

func dayIncluded(week schedule.WorkWeek, d time.Weekday) bool {
	for _, wd := range week.Days {
		if wd == d {
			return true
		}
	}
	return false
}
