package queries

import (
	"context"
	"log/slog"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

type ListEventsQuery struct {
	Filter ports.EventFilter
}

type ListEventsResult struct {
	Items []entities.Event
}

type ListEventsUseCase struct {
	Catalog ports.CatalogRepository
	Logger  *slog.Logger
}

func (u ListEventsUseCase) Execute(ctx context.Context, query ListEventsQuery) (ListEventsResult, error) {
	filter := query.Filter
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 50
	}
	items, err := u.Catalog.ListEvents(ctx, filter)
	if err != nil {
		return ListEventsResult{}, err
	}
	return ListEventsResult{Items: items}, nil
}
