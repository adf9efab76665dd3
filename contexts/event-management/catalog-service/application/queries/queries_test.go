package queries

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/adapters/memory"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

func seedEvents(t *testing.T, store *memory.Store, count int) {
	t.Helper()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < count; i++ {
		err := store.CreateEvent(context.Background(), entities.Event{
			EventID:    fmt.Sprintf("cat-%d", i),
			ExternalID: fmt.Sprintf("ext-%d", i),
			Name:       fmt.Sprintf("Event %d", i),
			EventDate:  base.Add(time.Duration(i) * time.Hour),
			Status:     entities.EventStatusOpen,
		})
		if err != nil {
			t.Fatalf("seeding event %d failed: %v", i, err)
		}
	}
}

func TestListEventsAppliesDefaultLimit(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store, 60)
	useCase := ListEventsUseCase{Catalog: store}

	result, err := useCase.Execute(context.Background(), ListEventsQuery{})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(result.Items) != 50 {
		t.Fatalf("expected default page of 50, got %d", len(result.Items))
	}
}

func TestListEventsClampsOversizedLimit(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store, 60)
	useCase := ListEventsUseCase{Catalog: store}

	result, err := useCase.Execute(context.Background(), ListEventsQuery{
		Filter: ports.EventFilter{Limit: 1000},
	})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(result.Items) != 50 {
		t.Fatalf("oversized limit must fall back to the default, got %d", len(result.Items))
	}
}

func TestListEventsFiltersByStatus(t *testing.T) {
	store := memory.NewStore()
	seedEvents(t, store, 3)
	err := store.CreateEvent(context.Background(), entities.Event{
		EventID:    "cat-closed",
		ExternalID: "ext-closed",
		Name:       "Closed Event",
		EventDate:  time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		Status:     entities.EventStatusClosed,
	})
	if err != nil {
		t.Fatalf("seeding closed event failed: %v", err)
	}
	useCase := ListEventsUseCase{Catalog: store}

	result, err := useCase.Execute(context.Background(), ListEventsQuery{
		Filter: ports.EventFilter{Status: entities.EventStatusClosed},
	})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].EventID != "cat-closed" {
		t.Fatalf("expected only the closed event, got %+v", result.Items)
	}
}

func TestGetEventReturnsNotFound(t *testing.T) {
	store := memory.NewStore()
	useCase := GetEventUseCase{Catalog: store}

	_, err := useCase.Execute(context.Background(), GetEventQuery{EventID: "missing"})
	if !errors.Is(err, domainerrors.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestListSyncResultsNewestFirst(t *testing.T) {
	store := memory.NewStore()
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.CreateSyncResult(context.Background(), entities.SyncResult{
			ExecutedAt: base.Add(time.Duration(i) * time.Hour),
			AddedCount: i,
		})
		if err != nil {
			t.Fatalf("seeding sync result %d failed: %v", i, err)
		}
	}
	useCase := ListSyncResultsUseCase{Results: store}

	result, err := useCase.Execute(context.Background(), ListSyncResultsQuery{Limit: 2})
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.Items))
	}
	if !result.Items[0].ExecutedAt.After(result.Items[1].ExecutedAt) {
		t.Fatalf("expected newest first, got %+v", result.Items)
	}
}
