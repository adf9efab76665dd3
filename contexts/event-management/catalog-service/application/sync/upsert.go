package sync

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/RadikAgl/events/contexts/event-management/catalog-service/application"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/services"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"

	"github.com/google/uuid"
)

type ItemOutcome string

const (
	OutcomeAdded     ItemOutcome = "added"
	OutcomeUpdated   ItemOutcome = "updated"
	OutcomeUnchanged ItemOutcome = "unchanged"
	OutcomeSkipped   ItemOutcome = "skipped"
)

// ItemResult makes per-item failures data instead of control flow: a bad
// record is reported as skipped-with-reason and can never unwind past the
// item boundary into the surrounding run.
type ItemResult struct {
	Outcome ItemOutcome
	Reason  string
}

func skipped(reason string) ItemResult {
	return ItemResult{Outcome: OutcomeSkipped, Reason: reason}
}

// UpsertEngine merges one provider record into the local catalog using the
// changedAt last-write-wins watermark.
type UpsertEngine struct {
	Catalog     ports.CatalogRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (e UpsertEngine) Apply(ctx context.Context, item ports.ProviderItem) ItemResult {
	logger := application.ResolveLogger(e.Logger)

	externalID, reason := parseExternalID(item.ID)
	if reason != "" {
		return e.logSkip(logger, item, skipped(reason))
	}

	var changedAt time.Time
	if strings.TrimSpace(item.ChangedAt) != "" {
		parsed, err := services.ParseTimestamp(item.ChangedAt)
		if err != nil {
			return e.logSkip(logger, item, skipped("unparseable changed_at: "+err.Error()))
		}
		changedAt = parsed
	}

	eventDate, err := services.ParseTimestamp(item.EventTime)
	if err != nil {
		return e.logSkip(logger, item, skipped("unparseable event_time: "+err.Error()))
	}

	var venueID *string
	if item.Place != nil {
		placeID, reason := parseExternalID(item.Place.ID)
		if reason != "" {
			return e.logSkip(logger, item, skipped("place: "+reason))
		}
		venue, err := e.Catalog.GetOrCreateVenue(ctx, placeID, item.Place.Name)
		if err != nil {
			return e.logSkip(logger, item, skipped("venue resolve failed: "+err.Error()))
		}
		venueID = &venue.VenueID
	}

	status := services.DeriveStatus(item.Status, item.RegistrationDeadline, e.Clock.Now())

	stored, found, err := e.Catalog.FindEventByExternalID(ctx, externalID)
	if err != nil {
		return e.logSkip(logger, item, skipped("event lookup failed: "+err.Error()))
	}

	if !found {
		eventID, err := e.IDGenerator.NewID(ctx)
		if err != nil {
			return e.logSkip(logger, item, skipped("id generation failed: "+err.Error()))
		}
		event := entities.Event{
			EventID:    eventID,
			ExternalID: externalID,
			Name:       item.Name,
			EventDate:  eventDate,
			ChangedAt:  changedAt,
			Status:     status,
			VenueID:    venueID,
		}
		if err := e.Catalog.CreateEvent(ctx, event); err != nil {
			return e.logSkip(logger, item, skipped("event create failed: "+err.Error()))
		}
		return ItemResult{Outcome: OutcomeAdded}
	}

	// Last-write-wins: only a strictly newer upstream watermark may overwrite.
	if changedAt.IsZero() || (!stored.ChangedAt.IsZero() && !changedAt.After(stored.ChangedAt)) {
		return ItemResult{Outcome: OutcomeUnchanged}
	}

	stored.Name = item.Name
	stored.EventDate = eventDate
	stored.Status = status
	stored.ChangedAt = changedAt
	stored.VenueID = venueID
	if err := e.Catalog.UpdateEvent(ctx, stored); err != nil {
		return e.logSkip(logger, item, skipped("event update failed: "+err.Error()))
	}
	return ItemResult{Outcome: OutcomeUpdated}
}

func (e UpsertEngine) logSkip(logger *slog.Logger, item ports.ProviderItem, result ItemResult) ItemResult {
	logger.Error("provider item skipped",
		"event", "catalog_upsert_item_skipped",
		"module", "event-management/catalog-service",
		"layer", "application",
		"provider_id", item.ID,
		"reason", result.Reason,
	)
	return result
}

func parseExternalID(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "missing provider id"
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", "invalid provider id: " + err.Error()
	}
	return parsed.String(), ""
}
