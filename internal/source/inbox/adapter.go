package inbox

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rkrishnan/caredesk/internal/model"
	"github.com/rkrishnan/caredesk/internal/source"
)

// Adapter implements source.Source for the referral mailbox (IMAP).
// Inbound referral emails from partner practices show up as events.
type Adapter struct {
	imapClient *IMAPClient
	sourceID   string
	username   string
}

// NewAdapter creates a new referral inbox adapter.
func NewAdapter(
	host, port, username, password string,
	useTLS bool,
	mailbox string,
	sourceID string,
) *Adapter {
	return &Adapter{
		imapClient: NewIMAPClient(
			host, port, username, password, useTLS, mailbox,
		),
		sourceID: sourceID,
		username: username,
	}
}

// Type returns the source type identifier.
func (a *Adapter) Type() source.SourceType {
	return source.SourceTypeInbox
}

// ValidateConnection verifies IMAP credentials by connecting and
// authenticating. Returns the username on success.
func (a *Adapter) ValidateConnection(
	ctx context.Context,
) (string, error) {
	client, err := a.imapClient.Connect(ctx)
	if err != nil {
		return "", fmt.Errorf("validating inbox connection: %w", err)
	}
	defer func() { _ = client.Logout().Wait() }()

	return fmt.Sprintf("Connected as %s", a.username), nil
}

// FetchItems retrieves recent referral messages and maps them to
// events.
func (a *Adapter) FetchItems(
	ctx context.Context,
	opts source.FetchOptions,
) (*source.FetchResult, error) {
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = 50
	}

	envelopes, err := a.imapClient.FetchEnvelopes(ctx, 100)
	if err != nil {
		return nil, fmt.Errorf("fetching referral messages: %w", err)
	}

	events := make([]model.Event, 0, len(envelopes))
	for _, env := range envelopes {
		events = append(events, a.envelopeToEvent(env))
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(events) {
		return &source.FetchResult{
			Items:   nil,
			Total:   len(events),
			HasMore: false,
		}, nil
	}

	end := start + pageSize
	hasMore := false
	if end < len(events) {
		hasMore = true
	} else {
		end = len(events)
	}

	return &source.FetchResult{
		Items:   events[start:end],
		Total:   len(events),
		HasMore: hasMore,
	}, nil
}

// GetItemDetail retrieves the full referral message body for a given
// UID.
func (a *Adapter) GetItemDetail(
	ctx context.Context,
	sourceItemID string,
) (*source.ItemDetail, error) {
	uid, err := parseUID(sourceItemID)
	if err != nil {
		return nil, err
	}

	parsed, err := a.imapClient.FetchMessage(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf(
			"fetching referral detail %s: %w", sourceItemID, err,
		)
	}

	event := a.envelopeToEvent(parsed.Envelope)

	// Prefer plain text body; fall back to stripped HTML
	renderedBody := parsed.TextBody
	if renderedBody == "" && parsed.HTMLBody != "" {
		renderedBody = stripHTML(parsed.HTMLBody)
	}

	metadata := make(map[string]string)
	if parsed.Envelope.MessageID != "" {
		metadata["Message-ID"] = parsed.Envelope.MessageID
	}
	if len(parsed.Envelope.To) > 0 {
		metadata["To"] = strings.Join(parsed.Envelope.To, ", ")
	}
	if len(parsed.Attachments) > 0 {
		var parts []string
		for _, att := range parsed.Attachments {
			parts = append(parts, fmt.Sprintf(
				"%s (%s, %s)",
				att.Filename, att.MIMEType, formatSize(att.Size),
			))
		}
		metadata["Attachments"] = strings.Join(parts, "; ")
	}

	return &source.ItemDetail{
		Event:        event,
		RenderedBody: renderedBody,
		Metadata:     metadata,
	}, nil
}

// patientPattern extracts the patient name from common referral
// subject lines like "Referral: Priya Sharma" or
// "Referral for Arjun Mehta - cardiology".
var patientPattern = regexp.MustCompile(
	`(?i)referral(?:\s+for)?\s*[:\-]?\s*([^-–(]+)`,
)

// envelopeToEvent converts an Envelope to a referral event. Messages
// flagged by staff surface as warnings; unread messages as info.
func (a *Adapter) envelopeToEvent(env Envelope) model.Event {
	rawData, _ := json.Marshal(env)

	hasSeen := false
	hasFlagged := false
	for _, flag := range env.Flags {
		switch flag {
		case `\Seen`:
			hasSeen = true
		case `\Flagged`:
			hasFlagged = true
		}
	}

	severity := model.SeverityInfo
	if hasFlagged {
		severity = model.SeverityWarning
	}

	status := model.StatusScheduled
	if hasSeen {
		status = model.StatusCompleted
	}

	eventID := "inbox-" + sanitizeID(env.MessageID)
	if env.MessageID == "" {
		eventID = fmt.Sprintf("inbox-uid-%d", env.UID)
	}

	return model.Event{
		ID:           eventID,
		SourceType:   model.SourceTypeInbox,
		SourceItemID: strconv.FormatUint(uint64(env.UID), 10),
		SourceID:     a.sourceID,
		Category:     model.CategoryReferral,
		Title:        env.Subject,
		Status:       status,
		Severity:     severity,
		Patient:      patientFromSubject(env.Subject),
		Practitioner: env.From,
		CreatedAt:    env.Date,
		UpdatedAt:    env.Date,
		FetchedAt:    time.Now(),
		RawData:      string(rawData),
	}
}

func patientFromSubject(subject string) string {
	match := patientPattern.FindStringSubmatch(subject)
	if len(match) < 2 {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// parseUID converts a source item ID string to an IMAP UID.
func parseUID(sourceItemID string) (uint32, error) {
	uid, err := strconv.ParseUint(sourceItemID, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid message UID %q: %w", sourceItemID, err)
	}
	return uint32(uid), nil
}

var (
	idCleanPattern = regexp.MustCompile(`[^a-zA-Z0-9._@-]`)
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// sanitizeID strips characters unsuitable for an internal event ID.
func sanitizeID(messageID string) string {
	trimmed := strings.Trim(messageID, "<>")
	return idCleanPattern.ReplaceAllString(trimmed, "")
}

// stripHTML removes tags from an HTML body for plain terminal display.
func stripHTML(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return strings.Join(lines, "\n")
}

// formatSize renders a byte count for display.
func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
