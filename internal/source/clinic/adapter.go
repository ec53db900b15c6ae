package clinic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/schedule"
	"github.com/rkrishnan/caredesk/internal/source"
)

// Adapter implements source.Source for the clinic practice-management
// system's appointments feed.
type Adapter struct {
	client   *Client
	sourceID string
}

// NewAdapter creates a clinic source adapter.
func NewAdapter(client *Client, sourceID string) *Adapter {
	return &Adapter{
		client:   client,
		sourceID: sourceID,
	}
}

// Type returns the source type identifier.
func (a *Adapter) Type() source.SourceType {
	return source.SourceTypeClinic
}

// ValidateConnection verifies the API token by fetching the current
// user's profile.
func (a *Adapter) ValidateConnection(ctx context.Context) (string, error) {
	var profile Profile
	if err := a.client.Get(ctx, "/api/v1/me", &profile); err != nil {
		return "", fmt.Errorf("validating clinic connection: %w", err)
	}
	return fmt.Sprintf("Connected as %s", profile.DisplayName), nil
}

// FetchItems retrieves a page of appointments.
func (a *Adapter) FetchItems(
	ctx context.Context,
	opts source.FetchOptions,
) (*source.FetchResult, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("page_size", fmt.Sprintf("%d", pageSize))
	query.Set("order_by", "scheduled_time")

	var resp AppointmentsResponse
	path := "/api/v1/appointments?" + query.Encode()
	if err := a.client.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetching appointments: %w", err)
	}

	items := make([]model.Event, 0, len(resp.Appointments))
	for _, appt := range resp.Appointments {
		items = append(items, a.appointmentToEvent(appt))
	}

	return &source.FetchResult{
		Items:   items,
		Total:   resp.Total,
		HasMore: page*pageSize < resp.Total,
	}, nil
}

// GetItemDetail retrieves full details for a single appointment.
func (a *Adapter) GetItemDetail(
	ctx context.Context,
	sourceItemID string,
) (*source.ItemDetail, error) {
	var appt Appointment
	path := "/api/v1/appointments/" + url.PathEscape(sourceItemID)
	if err := a.client.Get(ctx, path, &appt); err != nil {
		return nil, fmt.Errorf(
			"fetching appointment %s: %w", sourceItemID, err,
		)
	}

	event := a.appointmentToEvent(appt)

	metadata := map[string]string{}
	if appt.Room != "" {
		metadata["Room"] = appt.Room
	}
	if appt.VisitType != "" {
		metadata["Visit type"] = appt.VisitType
	}
	if appt.DurationMinutes > 0 {
		metadata["Duration"] = fmt.Sprintf("%d min", appt.DurationMinutes)
	}

	return &source.ItemDetail{
		Event:        event,
		RenderedBody: event.Body,
		Metadata:     metadata,
	}, nil
}

// BusyIntervals returns the occupied time slots for a practitioner on
// the given day, sorted by start time. Used to suggest follow-up slots.
func (a *Adapter) BusyIntervals(
	ctx context.Context,
	practitioner string,
	day time.Time,
) ([]schedule.Interval, error) {
	query := url.Values{}
	query.Set("practitioner", practitioner)
	query.Set("date", day.Format("2006-01-02"))
	query.Set("status", "scheduled")

	var resp AppointmentsResponse
	path := "/api/v1/appointments?" + query.Encode()
	if err := a.client.Get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf(
			"fetching schedule for %s: %w", practitioner, err,
		)
	}

	intervals := make([]schedule.Interval, 0, len(resp.Appointments))
	for _, appt := range resp.Appointments {
		start, err := time.Parse(time.RFC3339, appt.ScheduledTime)
		if err != nil {
			continue
		}
		duration := time.Duration(appt.DurationMinutes) * time.Minute
		if duration <= 0 {
			duration = 30 * time.Minute
		}
		intervals = append(intervals, schedule.Interval{
			Start: start,
			End:   start.Add(duration),
		})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals, nil
}

// appointmentToEvent converts a clinic API appointment to the unified
// event model.
func (a *Adapter) appointmentToEvent(appt Appointment) model.Event {
	now := time.Now()

	event := model.Event{
		ID:           fmt.Sprintf("clinic-%s-%s", a.sourceID, appt.ID),
		SourceType:   model.SourceTypeClinic,
		SourceItemID: appt.ID,
		SourceID:     a.sourceID,
		Category:     model.CategoryAppointment,
		Title:        appointmentTitle(appt),
		Body:         appt.Notes,
		Status:       normalizeStatus(appt.Status),
		Severity:     statusSeverity(appt.Status),
		Patient:      appt.Patient,
		Practitioner: appt.Practitioner,
		FetchedAt:    now,
	}

	if t, err := time.Parse(time.RFC3339, appt.ScheduledTime); err == nil {
		event.OccursAt = &t
	}
	if t, err := time.Parse(time.RFC3339, appt.CreatedAt); err == nil {
		event.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, appt.UpdatedAt); err == nil {
		event.UpdatedAt = t
	}

	if raw, err := json.Marshal(appt); err == nil {
		event.RawData = string(raw)
	}

	return event
}

func appointmentTitle(appt Appointment) string {
	if appt.Reason == "" {
		return appt.Patient
	}
	return fmt.Sprintf("%s: %s", appt.Patient, appt.Reason)
}

// normalizeStatus maps clinic API statuses to the shared status set.
func normalizeStatus(status string) string {
	switch status {
	case "scheduled", "confirmed", "checked_in":
		return model.StatusScheduled
	case "completed":
		return model.StatusCompleted
	case "cancelled", "no_show":
		return model.StatusCancelled
	default:
		return model.StatusScheduled
	}
}

// statusSeverity picks the toast severity for an appointment status.
// Cancellations warrant a warning so staff can re-book the slot.
func statusSeverity(status string) string {
	switch normalizeStatus(status) {
	case model.StatusCancelled:
		return model.SeverityWarning
	case model.StatusCompleted:
		return model.SeveritySuccess
	default:
		return model.SeverityInfo
	}
}
