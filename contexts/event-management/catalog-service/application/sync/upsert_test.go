package sync

import (
	"context"
	"testing"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/adapters/memory"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

const (
	eventExternalID = "7b7430f0-3a4f-4f9a-b9d8-2f6fb8f0a101"
	placeExternalID = "9d3f1f2e-08a7-4c38-9d3b-6f1f0c5e7b02"
)

func newEngine(store *memory.Store) UpsertEngine {
	return UpsertEngine{
		Catalog:     store,
		Clock:       store,
		IDGenerator: store,
	}
}

func baseItem() ports.ProviderItem {
	return ports.ProviderItem{
		ID:                   eventExternalID,
		Name:                 "Go Conference",
		EventTime:            "2026-03-01T10:00:00",
		ChangedAt:            "2026-01-10T08:00:00",
		Status:               "new",
		RegistrationDeadline: "2026-02-20T00:00:00",
	}
}

func TestApplyAddsUnknownEvent(t *testing.T) {
	store := memory.NewStore()
	engine := newEngine(store)

	result := engine.Apply(context.Background(), baseItem())
	if result.Outcome != OutcomeAdded {
		t.Fatalf("expected added, got %s (%s)", result.Outcome, result.Reason)
	}

	event, ok := store.Events()[eventExternalID]
	if !ok {
		t.Fatal("event was not stored")
	}
	if event.Status != entities.EventStatusOpen {
		t.Fatalf("expected open status, got %s", event.Status)
	}
}

func TestApplyIsIdempotentForReplayedItem(t *testing.T) {
	store := memory.NewStore()
	engine := newEngine(store)
	item := baseItem()

	if result := engine.Apply(context.Background(), item); result.Outcome != OutcomeAdded {
		t.Fatalf("first apply: expected added, got %s", result.Outcome)
	}
	if result := engine.Apply(context.Background(), item); result.Outcome != OutcomeUnchanged {
		t.Fatalf("replay: expected unchanged, got %s", result.Outcome)
	}
	if len(store.Events()) != 1 {
		t.Fatalf("replay must not create a second event, got %d", len(store.Events()))
	}
}

func TestApplyUpdatesOnNewerWatermark(t *testing.T) {
	store := memory.NewStore()
	engine := newEngine(store)

	engine.Apply(context.Background(), baseItem())

	newer := baseItem()
	newer.Name = "Go Conference (rescheduled)"
	newer.ChangedAt = "2026-01-12T08:00:00"
	result := engine.Apply(context.Background(), newer)
	if result.Outcome != OutcomeUpdated {
		t.Fatalf("expected updated, got %s (%s)", result.Outcome, result.Reason)
	}
	if got := store.Events()[eventExternalID].Name; got != "Go Conference (rescheduled)" {
		t.Fatalf("name was not overwritten, got %q", got)
	}
}

func TestApplyIgnoresStaleWatermark(t *testing.T) {
	store := memory.NewStore()
	engine := newEngine(store)

	engine.Apply(context.Background(), baseItem())

	stale := baseItem()
	stale.Name = "Old Name"
	stale.ChangedAt = "2026-01-05T08:00:00"
	result := engine.Apply(context.Background(), stale)
	if result.Outcome != OutcomeUnchanged {
		t.Fatalf("expected unchanged for stale item, got %s", result.Outcome)
	}
	if got := store.Events()[eventExternalID].Name; got != "Go Conference" {
		t.Fatalf("stale item must not overwrite, got %q", got)
	}
}

func TestApplyTreatsMissingWatermarkAsStale(t *testing.T) {
	store := memory.NewStore()
	engine := newEngine(store)

	engine.Apply(context.Background(), baseItem())

	unmarked := baseItem()
	unmarked.Name = "No Watermark"
	unmarked.ChangedAt = ""
	result := engine.Apply(context.Background(), unmarked)
	if result.Outcome != OutcomeUnchanged {
		t.Fatalf("expected unchanged without watermark, got %s", result.Outcome)
	}
}

func TestApplySkipsMalformedItems(t *testing.T) {
	store := memory.NewStore()
	engine := newEngine(store)

	badID := baseItem()
	badID.ID = "not-a-uuid"
	if result := engine.Apply(context.Background(), badID); result.Outcome != OutcomeSkipped {
		t.Fatalf("expected skipped for bad id, got %s", result.Outcome)
	}

	badTime := baseItem()
	badTime.EventTime = "tomorrow"
	result := engine.Apply(context.Background(), badTime)
	if result.Outcome != OutcomeSkipped {
		t.Fatalf("expected skipped for bad event_time, got %s", result.Outcome)
	}
	if result.Reason == "" {
		t.Fatal("skip must carry a reason")
	}
	if len(store.Events()) != 0 {
		t.Fatal("skipped items must not create events")
	}
}

func TestApplyReusesVenueAcrossEvents(t *testing.T) {
	store := memory.NewStore()
	engine := newEngine(store)

	first := baseItem()
	first.Place = &ports.ProviderPlace{ID: placeExternalID, Name: "Main Hall"}
	if result := engine.Apply(context.Background(), first); result.Outcome != OutcomeAdded {
		t.Fatalf("first apply: expected added, got %s (%s)", result.Outcome, result.Reason)
	}

	second := baseItem()
	second.ID = "1c9f2a44-5a4e-45a8-8f57-0b8f6f3c4d03"
	second.Place = &ports.ProviderPlace{ID: placeExternalID, Name: "Main Hall"}
	if result := engine.Apply(context.Background(), second); result.Outcome != OutcomeAdded {
		t.Fatalf("second apply: expected added, got %s (%s)", result.Outcome, result.Reason)
	}

	events := store.Events()
	firstVenue := events[eventExternalID].VenueID
	secondVenue := events["1c9f2a44-5a4e-45a8-8f57-0b8f6f3c4d03"].VenueID
	if firstVenue == nil || secondVenue == nil {
		t.Fatal("both events must reference a venue")
	}
	if *firstVenue != *secondVenue {
		t.Fatalf("same place must map to one venue, got %s and %s", *firstVenue, *secondVenue)
	}
}
