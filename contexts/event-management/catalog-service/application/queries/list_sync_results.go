package queries

import (
	"context"
	"log/slog"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

type ListSyncResultsQuery struct {
	Limit int
}

type ListSyncResultsResult struct {
	Items []entities.SyncResult
}

type ListSyncResultsUseCase struct {
	Results ports.SyncResultRepository
	Logger  *slog.Logger
}

func (u ListSyncResultsUseCase) Execute(ctx context.Context, query ListSyncResultsQuery) (ListSyncResultsResult, error) {
	limit := query.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	items, err := u.Results.ListSyncResults(ctx, limit)
	if err != nil {
		return ListSyncResultsResult{}, err
	}
	return ListSyncResultsResult{Items: items}, nil
}
