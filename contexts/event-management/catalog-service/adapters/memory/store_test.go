package memory

import (
	"context"
	"testing"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

func TestGetOrCreateVenueIsIdempotent(t *testing.T) {
	store := NewStore()

	first, err := store.GetOrCreateVenue(context.Background(), "ext-1", "Main Hall")
	if err != nil {
		t.Fatalf("first call returned error: %v", err)
	}
	second, err := store.GetOrCreateVenue(context.Background(), "ext-1", "Main Hall")
	if err != nil {
		t.Fatalf("second call returned error: %v", err)
	}
	if first.VenueID != second.VenueID {
		t.Fatalf("expected one venue per external id, got %s and %s", first.VenueID, second.VenueID)
	}
}

func TestMaxChangedAtTracksNewestWatermark(t *testing.T) {
	store := NewStore()

	if _, ok, err := store.MaxChangedAt(context.Background()); err != nil || ok {
		t.Fatalf("empty catalog must report no watermark, got ok=%v err=%v", ok, err)
	}

	newest := time.Date(2026, 1, 12, 8, 0, 0, 0, time.UTC)
	for i, changedAt := range []time.Time{
		time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
		newest,
		time.Date(2026, 1, 11, 8, 0, 0, 0, time.UTC),
	} {
		err := store.CreateEvent(context.Background(), entities.Event{
			EventID:    string(rune('a' + i)),
			ExternalID: string(rune('x' + i)),
			Name:       "Event",
			EventDate:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			ChangedAt:  changedAt,
			Status:     entities.EventStatusOpen,
		})
		if err != nil {
			t.Fatalf("seeding event %d failed: %v", i, err)
		}
	}

	watermark, ok, err := store.MaxChangedAt(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected a watermark, got ok=%v err=%v", ok, err)
	}
	if !watermark.Equal(newest) {
		t.Fatalf("expected %v, got %v", newest, watermark)
	}
}

func TestListEventsFiltersAndOrders(t *testing.T) {
	store := NewStore()
	events := []entities.Event{
		{EventID: "e1", ExternalID: "x1", Name: "Go Conference", EventDate: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), Status: entities.EventStatusOpen},
		{EventID: "e2", ExternalID: "x2", Name: "Rust Meetup", EventDate: time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), Status: entities.EventStatusOpen},
		{EventID: "e3", ExternalID: "x3", Name: "Go Workshop", EventDate: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), Status: entities.EventStatusClosed},
	}
	for _, event := range events {
		if err := store.CreateEvent(context.Background(), event); err != nil {
			t.Fatalf("seeding %s failed: %v", event.EventID, err)
		}
	}

	items, err := store.ListEvents(context.Background(), ports.EventFilter{NameQuery: "go"})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 matches for case-insensitive name filter, got %d", len(items))
	}
	if !items[0].EventDate.After(items[1].EventDate) {
		t.Fatalf("expected newest event date first, got %+v", items)
	}

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	items, err = store.ListEvents(context.Background(), ports.EventFilter{DateFrom: &from})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(items) != 1 || items[0].EventID != "e2" {
		t.Fatalf("expected only the later event, got %+v", items)
	}
}
