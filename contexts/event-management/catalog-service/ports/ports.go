package ports

import (
	"context"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
)

// ProviderPlace is the optional venue block attached to a provider record.
type ProviderPlace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProviderItem is one raw provider record as served by the upstream API.
// Timestamps stay strings here; parsing is an upsert concern so that a
// malformed record can be skipped per item instead of failing the page.
type ProviderItem struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	EventTime            string         `json:"event_time"`
	ChangedAt            string         `json:"changed_at"`
	Status               string         `json:"status"`
	RegistrationDeadline string         `json:"registration_deadline"`
	Place                *ProviderPlace `json:"place"`
}

// ProviderSource streams provider records page by page for one run.
// changedSince is a YYYY-MM-DD cutoff; empty means a full fetch. A run keeps
// no resumable state: aborted pagination is retried only by a fresh call.
// Page-level failures (retry exhaustion, client rejection) end the stream
// early without an error; yield errors are propagated unchanged.
type ProviderSource interface {
	Events(ctx context.Context, changedSince string, yield func(ProviderItem) error) error
}

// EventFilter is the read-side filter for catalog listings.
type EventFilter struct {
	Status    entities.EventStatus
	NameQuery string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
}

// CatalogRepository owns venue/event persistence for the sync and read paths.
type CatalogRepository interface {
	// GetOrCreateVenue resolves a venue by provider external id, creating it
	// with the given name on first sighting.
	GetOrCreateVenue(ctx context.Context, externalID string, name string) (entities.Venue, error)
	FindEventByExternalID(ctx context.Context, externalID string) (entities.Event, bool, error)
	CreateEvent(ctx context.Context, event entities.Event) error
	// UpdateEvent overwrites name, event date, status, watermark and venue
	// reference of an existing event.
	UpdateEvent(ctx context.Context, event entities.Event) error
	// MaxChangedAt returns the newest stored watermark; ok is false when the
	// catalog holds no watermarked events yet.
	MaxChangedAt(ctx context.Context) (time.Time, bool, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]entities.Event, error)
	GetEvent(ctx context.Context, eventID string) (entities.Event, bool, error)
}

// SyncResultRepository persists the per-run audit records.
type SyncResultRepository interface {
	CreateSyncResult(ctx context.Context, result entities.SyncResult) (entities.SyncResult, error)
	ListSyncResults(ctx context.Context, limit int) ([]entities.SyncResult, error)
}

// Clock allows deterministic testing of status derivation and audit stamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts venue/event identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
