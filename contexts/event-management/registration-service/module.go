package registrationservice

import (
	"log/slog"

	httpadapter "github.com/RadikAgl/events/contexts/event-management/registration-service/adapters/http"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/adapters/memory"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/application/commands"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/application/workers"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/ports"
)

// Module is the composition surface of the registration service.
// Runtime wiring consumes Handler and Worker; Store is exposed for tests.
type Module struct {
	Handler httpadapter.Handler
	Worker  workers.DeliveryWorker
	Store   *memory.Store
}

type Dependencies struct {
	Catalog       ports.EventCatalog
	Registrations ports.RegistrationRepository
	Outbox        ports.OutboxStore
	Gateway       ports.NotificationGateway
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Codes         ports.CodeGenerator
	BatchSize     int
	Logger        *slog.Logger
}

// NewModule wires the registration use-cases against explicit ports.
func NewModule(deps Dependencies) Module {
	register := commands.RegisterAttendeeUseCase{
		Catalog:       deps.Catalog,
		Registrations: deps.Registrations,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Codes:         deps.Codes,
		Logger:        deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Register: register,
			Logger:   deps.Logger,
		},
		Worker: workers.DeliveryWorker{
			Outbox:    deps.Outbox,
			Gateway:   deps.Gateway,
			BatchSize: deps.BatchSize,
			Logger:    deps.Logger,
		},
	}
}

// NewInMemoryModule wires the registration use cases against the in-memory
// adapter; the gateway still has to be supplied by the caller.
func NewInMemoryModule(gateway ports.NotificationGateway, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Catalog:       store,
		Registrations: store,
		Outbox:        store,
		Gateway:       gateway,
		Clock:         store,
		IDGenerator:   store,
		Codes:         store,
		BatchSize:     100,
		Logger:        logger,
	})
	module.Store = store
	return module
}
