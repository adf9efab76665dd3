package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/application/queries"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
	httptransport "github.com/RadikAgl/events/contexts/event-management/catalog-service/transport/http"
)

type Handler struct {
	ListEvents      queries.ListEventsUseCase
	GetEvent        queries.GetEventUseCase
	ListSyncResults queries.ListSyncResultsUseCase
	Logger          *slog.Logger
}

// ListEventsHandler godoc
// @Summary List catalog events
// @Description Returns synchronized events with optional status, name and date filters.
// @Tags catalog-service
// @Produce json
// @Param status query string false "Event status: open,closed"
// @Param name query string false "Name substring filter"
// @Param date_from query string false "Earliest event date (YYYY-MM-DD)"
// @Param date_to query string false "Latest event date (YYYY-MM-DD)"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httptransport.ListEventsResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/events [get]
func (h Handler) ListEventsHandler(ctx context.Context, req httptransport.ListEventsRequest) (httptransport.ListEventsResponse, error) {
	filter := ports.EventFilter{
		Status:    entities.EventStatus(req.Status),
		NameQuery: req.Name,
		Limit:     req.Limit,
	}
	if req.DateFrom != "" {
		from, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return httptransport.ListEventsResponse{}, domainerrors.ErrInvalidSinceDate
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return httptransport.ListEventsResponse{}, domainerrors.ErrInvalidSinceDate
		}
		filter.DateTo = &to
	}

	result, err := h.ListEvents.Execute(ctx, queries.ListEventsQuery{Filter: filter})
	if err != nil {
		return httptransport.ListEventsResponse{}, err
	}
	return httptransport.ListEventsResponse{Items: mapEvents(result.Items)}, nil
}

// GetEventHandler godoc
// @Summary Get one catalog event
// @Description Returns one event by id.
// @Tags catalog-service
// @Produce json
// @Param event_id path string true "Event id"
// @Success 200 {object} httptransport.GetEventResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/events/{event_id} [get]
func (h Handler) GetEventHandler(ctx context.Context, eventID string) (httptransport.GetEventResponse, error) {
	result, err := h.GetEvent.Execute(ctx, queries.GetEventQuery{EventID: eventID})
	if err != nil {
		return httptransport.GetEventResponse{}, err
	}
	return httptransport.GetEventResponse{Item: mapEvent(result.Item)}, nil
}

// ListSyncResultsHandler godoc
// @Summary List sync audit records
// @Description Returns sync run summaries, newest first.
// @Tags catalog-service
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} httptransport.ListSyncResultsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /api/v1/sync/results [get]
func (h Handler) ListSyncResultsHandler(ctx context.Context, limit int) (httptransport.ListSyncResultsResponse, error) {
	result, err := h.ListSyncResults.Execute(ctx, queries.ListSyncResultsQuery{Limit: limit})
	if err != nil {
		return httptransport.ListSyncResultsResponse{}, err
	}

	items := make([]httptransport.SyncResultDTO, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, httptransport.SyncResultDTO{
			ID:           item.ID,
			ExecutedAt:   item.ExecutedAt.UTC().Format(time.RFC3339),
			AddedCount:   item.AddedCount,
			UpdatedCount: item.UpdatedCount,
		})
	}
	return httptransport.ListSyncResultsResponse{Items: items}, nil
}

func mapEvents(items []entities.Event) []httptransport.EventDTO {
	mapped := make([]httptransport.EventDTO, 0, len(items))
	for _, item := range items {
		mapped = append(mapped, mapEvent(item))
	}
	return mapped
}

func mapEvent(event entities.Event) httptransport.EventDTO {
	dto := httptransport.EventDTO{
		EventID:   event.EventID,
		Name:      event.Name,
		EventDate: event.EventDate.UTC().Format(time.RFC3339),
		Status:    string(event.Status),
	}
	if event.VenueID != nil {
		dto.VenueID = *event.VenueID
	}
	return dto
}
