package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/rkrishnan/caredesk/internal/model"
)

// AuthError indicates that authentication has failed or expired for a
// source. It is returned by source clients when a 401 response or a
// failed login is encountered.
type AuthError struct {
	SourceType SourceType
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%s): %s", e.SourceType, e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// SourceType identifies the kind of clinic integration.
type SourceType string

const (
	SourceTypeClinic  SourceType = "clinic"
	SourceTypeRecords SourceType = "records"
	SourceTypeInbox   SourceType = "inbox"
)

// FetchOptions controls pagination for list operations.
type FetchOptions struct {
	Page     int
	PageSize int
}

// FetchResult holds a page of events returned from a source query.
type FetchResult struct {
	Items   []model.Event
	Total   int
	HasMore bool
}

// ItemDetail extends an Event with additional rendered content and
// metadata available when viewing a single item in detail.
type ItemDetail struct {
	model.Event

	// RenderedBody is the body formatted for terminal display.
	RenderedBody string

	// Metadata holds arbitrary key-value pairs from the source
	// (e.g., room, visit type, referring practice).
	Metadata map[string]string
}

// Source defines the contract that every clinic integration must
// implement. Sources are read-only monitors: they fetch and describe
// items but never mutate the upstream system.
type Source interface {
	// Type returns the source type identifier.
	Type() SourceType

	// ValidateConnection verifies credentials and connectivity.
	// Returns a human-readable status message on success.
	ValidateConnection(ctx context.Context) (string, error)

	// FetchItems retrieves a page of events from the source.
	FetchItems(ctx context.Context, opts FetchOptions) (*FetchResult, error)

	// GetItemDetail retrieves full details for a single item.
	GetItemDetail(ctx context.Context, sourceItemID string) (*ItemDetail, error)
}
