package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

// Store is an in-memory adapter implementing the catalog ports for local
// runtime and tests. It is not intended as production persistence.
type Store struct {
	mu               sync.Mutex
	venues           map[string]entities.Venue // keyed by external id
	events           map[string]entities.Event // keyed by external id
	results          []entities.SyncResult
	nextSyncResultID int64
	sequence         uint64
	now              time.Time
}

func NewStore() *Store {
	return &Store{
		venues:           make(map[string]entities.Venue),
		events:           make(map[string]entities.Event),
		nextSyncResultID: 1,
		now:              time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("cat-%08d", s.sequence), nil
}

func (s *Store) GetOrCreateVenue(_ context.Context, externalID string, name string) (entities.Venue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if venue, ok := s.venues[externalID]; ok {
		return venue, nil
	}
	s.sequence++
	venue := entities.Venue{
		VenueID:    fmt.Sprintf("cat-%08d", s.sequence),
		ExternalID: externalID,
		Name:       name,
	}
	s.venues[externalID] = venue
	return venue, nil
}

func (s *Store) FindEventByExternalID(_ context.Context, externalID string) (entities.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[externalID]
	return event, ok, nil
}

func (s *Store) CreateEvent(_ context.Context, event entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.events[event.ExternalID]; exists {
		return nil
	}
	s.events[event.ExternalID] = event
	return nil
}

func (s *Store) UpdateEvent(_ context.Context, event entities.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ExternalID] = event
	return nil
}

func (s *Store) MaxChangedAt(_ context.Context) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var watermark time.Time
	for _, event := range s.events {
		if event.ChangedAt.After(watermark) {
			watermark = event.ChangedAt
		}
	}
	if watermark.IsZero() {
		return time.Time{}, false, nil
	}
	return watermark, true, nil
}

func (s *Store) ListEvents(_ context.Context, filter ports.EventFilter) ([]entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []entities.Event
	for _, event := range s.events {
		if filter.Status != "" && event.Status != filter.Status {
			continue
		}
		if filter.NameQuery != "" &&
			!strings.Contains(strings.ToLower(event.Name), strings.ToLower(filter.NameQuery)) {
			continue
		}
		if filter.DateFrom != nil && event.EventDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && event.EventDate.After(*filter.DateTo) {
			continue
		}
		items = append(items, event)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].EventDate.Equal(items[j].EventDate) {
			return items[i].Name < items[j].Name
		}
		return items[i].EventDate.After(items[j].EventDate)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) GetEvent(_ context.Context, eventID string) (entities.Event, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, event := range s.events {
		if event.EventID == eventID {
			return event, true, nil
		}
	}
	return entities.Event{}, false, nil
}

func (s *Store) CreateSyncResult(_ context.Context, result entities.SyncResult) (entities.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result.ID = s.nextSyncResultID
	s.nextSyncResultID++
	s.results = append(s.results, result)
	return result, nil
}

func (s *Store) ListSyncResults(_ context.Context, limit int) ([]entities.SyncResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := append([]entities.SyncResult(nil), s.results...)
	sort.Slice(items, func(i, j int) bool {
		if items[i].ExecutedAt.Equal(items[j].ExecutedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].ExecutedAt.After(items[j].ExecutedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// Events returns a snapshot of stored events keyed by external id.
func (s *Store) Events() map[string]entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]entities.Event, len(s.events))
	for externalID, event := range s.events {
		snapshot[externalID] = event
	}
	return snapshot
}

// SyncResults returns all audit rows in insertion order.
func (s *Store) SyncResults() []entities.SyncResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.SyncResult(nil), s.results...)
}
