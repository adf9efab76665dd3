package queries

import (
	"context"
	"log/slog"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

type GetEventQuery struct {
	EventID string
}

type GetEventResult struct {
	Item entities.Event
}

type GetEventUseCase struct {
	Catalog ports.CatalogRepository
	Logger  *slog.Logger
}

func (u GetEventUseCase) Execute(ctx context.Context, query GetEventQuery) (GetEventResult, error) {
	event, found, err := u.Catalog.GetEvent(ctx, query.EventID)
	if err != nil {
		return GetEventResult{}, err
	}
	if !found {
		return GetEventResult{}, domainerrors.ErrEventNotFound
	}
	return GetEventResult{Item: event}, nil
}
