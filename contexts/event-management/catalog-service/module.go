package catalogservice

import (
	"log/slog"

	httpadapter "github.com/RadikAgl/events/contexts/event-management/catalog-service/adapters/http"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/adapters/memory"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/application/queries"
	syncapp "github.com/RadikAgl/events/contexts/event-management/catalog-service/application/sync"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

// Module is the composition surface of the catalog service.
// Runtime wiring consumes Handler and Sync; Store is exposed for tests.
type Module struct {
	Handler httpadapter.Handler
	Sync    syncapp.RunSyncUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Provider    ports.ProviderSource
	Catalog     ports.CatalogRepository
	Results     ports.SyncResultRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the catalog use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			ListEvents: queries.ListEventsUseCase{
				Catalog: deps.Catalog,
				Logger:  deps.Logger,
			},
			GetEvent: queries.GetEventUseCase{
				Catalog: deps.Catalog,
				Logger:  deps.Logger,
			},
			ListSyncResults: queries.ListSyncResultsUseCase{
				Results: deps.Results,
				Logger:  deps.Logger,
			},
			Logger: deps.Logger,
		},
		Sync: syncapp.RunSyncUseCase{
			Provider:    deps.Provider,
			Catalog:     deps.Catalog,
			Results:     deps.Results,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule wires the catalog use cases against the in-memory
// adapter; the provider source still has to be supplied by the caller.
func NewInMemoryModule(provider ports.ProviderSource, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Provider:    provider,
		Catalog:     store,
		Results:     store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
