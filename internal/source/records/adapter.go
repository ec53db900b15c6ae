package records

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/source"
)

// Adapter implements source.Source for the EHR record and prescription
// feed.
type Adapter struct {
	client   *Client
	sourceID string
}

// NewAdapter creates an EHR source adapter.
func NewAdapter(client *Client, sourceID string) *Adapter {
	return &Adapter{
		client:   client,
		sourceID: sourceID,
	}
}

// Type returns the source type identifier.
func (a *Adapter) Type() source.SourceType {
	return source.SourceTypeRecords
}

// ValidateConnection verifies the app password against the session
// endpoint.
func (a *Adapter) ValidateConnection(ctx context.Context) (string, error) {
	var who Whoami
	if err := a.client.Get(ctx, "/api/whoami", &who); err != nil {
		return "", fmt.Errorf("validating EHR connection: %w", err)
	}
	name := who.FullName
	if name == "" {
		name = who.Username
	}
	return fmt.Sprintf("Connected as %s", name), nil
}

// FetchItems retrieves a page of record entries and prescriptions.
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

	var resp EntriesResponse
	if err := a.client.Get(ctx, "/api/entries?"+query.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching record entries: %w", err)
	}

	items := make([]model.Event, 0, len(resp.Entries))
	for _, entry := range resp.Entries {
		items = append(items, a.entryToEvent(entry))
	}

	return &source.FetchResult{
		Items:   items,
		Total:   resp.Total,
		HasMore: page*pageSize < resp.Total,
	}, nil
}

// GetItemDetail retrieves full details for a single entry.
func (a *Adapter) GetItemDetail(
	ctx context.Context,
	sourceItemID string,
) (*source.ItemDetail, error) {
	var entry Entry
	path := "/api/entries/" + url.PathEscape(sourceItemID)
	if err := a.client.Get(ctx, path, &entry); err != nil {
		return nil, fmt.Errorf("fetching entry %s: %w", sourceItemID, err)
	}

	event := a.entryToEvent(entry)

	metadata := map[string]string{}
	if entry.Diagnosis != "" {
		metadata["Diagnosis"] = entry.Diagnosis
	}
	if entry.Treatment != "" {
		metadata["Treatment"] = entry.Treatment
	}
	if entry.Medication != "" {
		metadata["Medication"] = entry.Medication
	}
	if entry.Dosage != "" {
		metadata["Dosage"] = entry.Dosage
	}

	return &source.ItemDetail{
		Event:        event,
		RenderedBody: event.Body,
		Metadata:     metadata,
	}, nil
}

// entryToEvent converts an EHR feed entry to the unified event model.
func (a *Adapter) entryToEvent(entry Entry) model.Event {
	event := model.Event{
		ID:           fmt.Sprintf("records-%s-%s", a.sourceID, entry.ID),
		SourceType:   model.SourceTypeRecords,
		SourceItemID: entry.ID,
		SourceID:     a.sourceID,
		Status:       model.StatusCompleted,
		Patient:      entry.Patient,
		Practitioner: entry.Doctor,
		FetchedAt:    time.Now(),
	}

	if entry.Kind == "prescription" {
		event.Category = model.CategoryPrescription
		event.Title = prescriptionTitle(entry)
		event.Body = entry.Instructions
	} else {
		event.Category = model.CategoryRecord
		event.Title = recordTitle(entry)
		event.Body = entry.Notes
	}

	// Entries flagged for review by the doctor surface as warnings.
	if entry.Flagged {
		event.Severity = model.SeverityWarning
	} else {
		event.Severity = model.SeverityInfo
	}

	if t, err := time.Parse(time.RFC3339, entry.CreatedAt); err == nil {
		event.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, entry.UpdatedAt); err == nil {
		event.UpdatedAt = t
	}

	if raw, err := json.Marshal(entry); err == nil {
		event.RawData = string(raw)
	}

	return event
}

func recordTitle(entry Entry) string {
	if entry.Diagnosis == "" {
		return fmt.Sprintf("Record update: %s", entry.Patient)
	}
	return fmt.Sprintf("%s: %s", entry.Patient, entry.Diagnosis)
}

func prescriptionTitle(entry Entry) string {
	parts := []string{entry.Medication}
	if entry.Dosage != "" {
		parts = append(parts, entry.Dosage)
	}
	return fmt.Sprintf("Rx %s: %s", entry.Patient, strings.Join(parts, " "))
}
