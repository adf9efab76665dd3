package entities

import "time"

type EventStatus string

const (
	EventStatusOpen   EventStatus = "open"
	EventStatusClosed EventStatus = "closed"
)

// Venue is created and updated only by the sync upsert path, keyed by the
// provider-side external id.
type Venue struct {
	VenueID    string
	ExternalID string
	Name       string
}

// Event mirrors one provider record in the local catalog. ChangedAt is the
// upstream last-modification watermark; a zero value means the provider never
// reported one. The watermark is monotonically non-decreasing per ExternalID.
type Event struct {
	EventID    string
	ExternalID string
	Name       string
	EventDate  time.Time
	ChangedAt  time.Time
	Status     EventStatus
	VenueID    *string
}
