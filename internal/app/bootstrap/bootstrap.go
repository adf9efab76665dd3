package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	catalogservice "github.com/RadikAgl/events/contexts/event-management/catalog-service"
	catalogpostgres "github.com/RadikAgl/events/contexts/event-management/catalog-service/adapters/postgres"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/adapters/provider"
	syncapp "github.com/RadikAgl/events/contexts/event-management/catalog-service/application/sync"
	registrationservice "github.com/RadikAgl/events/contexts/event-management/registration-service"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/adapters/notify"
	registrationpostgres "github.com/RadikAgl/events/contexts/event-management/registration-service/adapters/postgres"
	workerapp "github.com/RadikAgl/events/contexts/event-management/registration-service/application/workers"
	"github.com/RadikAgl/events/internal/platform/config"
	"github.com/RadikAgl/events/internal/platform/db"
	"github.com/RadikAgl/events/internal/platform/httpserver"
	"github.com/RadikAgl/events/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	delivery     workerapp.DeliveryWorker
	pollInterval time.Duration
	logger       *slog.Logger
}

type SyncApp struct {
	postgres *db.Postgres
	sync     syncapp.RunSyncUseCase
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	registrationRepo := registrationpostgres.NewRepository(pg.DB, logger)
	gateway := notify.NewGateway(notify.Config{
		BaseURL: cfg.NotificationsURL,
		Token:   cfg.NotificationsToken,
		OwnerID: cfg.NotificationsOwnerID,
	}, logger)
	registrationModule := registrationservice.NewModule(registrationservice.Dependencies{
		Catalog:       registrationRepo,
		Registrations: registrationRepo,
		Outbox:        registrationRepo,
		Gateway:       gateway,
		Clock:         registrationpostgres.SystemClock{},
		IDGenerator:   registrationpostgres.UUIDGenerator{},
		Codes:         registrationpostgres.RandomCodeGenerator{},
		BatchSize:     cfg.OutboxBatchSize,
		Logger:        logger,
	})

	catalogRepo := catalogpostgres.NewRepository(pg.DB, logger)
	providerClient := provider.NewClient(provider.Config{
		BaseURL: cfg.ProviderURL,
		Token:   cfg.ProviderToken,
	}, logger)
	catalogModule := catalogservice.NewModule(catalogservice.Dependencies{
		Provider:    providerClient,
		Catalog:     catalogRepo,
		Results:     catalogRepo,
		Clock:       catalogpostgres.SystemClock{},
		IDGenerator: catalogpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	server := httpserver.New(registrationModule, catalogModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := registrationpostgres.NewRepository(pg.DB, logger)
	gateway := notify.NewGateway(notify.Config{
		BaseURL: cfg.NotificationsURL,
		Token:   cfg.NotificationsToken,
		OwnerID: cfg.NotificationsOwnerID,
	}, logger)

	return &WorkerApp{
		postgres: pg,
		delivery: workerapp.DeliveryWorker{
			Outbox:    repo,
			Gateway:   gateway,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func BuildSync() (*SyncApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "sync")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	if strings.TrimSpace(cfg.ProviderURL) == "" {
		return nil, errors.New("PROVIDER_URL is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	repo := catalogpostgres.NewRepository(pg.DB, logger)
	providerClient := provider.NewClient(provider.Config{
		BaseURL: cfg.ProviderURL,
		Token:   cfg.ProviderToken,
	}, logger)
	module := catalogservice.NewModule(catalogservice.Dependencies{
		Provider:    providerClient,
		Catalog:     repo,
		Results:     repo,
		Clock:       catalogpostgres.SystemClock{},
		IDGenerator: catalogpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	return &SyncApp{
		postgres: pg,
		sync:     module.Sync,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		stats, err := w.delivery.RunOnce(ctx)
		if err != nil {
			return err
		}
		metrics.OutboxClaimedTotal.Add(float64(stats.Claimed))
		metrics.OutboxSentTotal.Add(float64(stats.Sent))
		metrics.OutboxRetriedTotal.Add(float64(stats.Retried))
		metrics.OutboxFailedTotal.Add(float64(stats.Failed))

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func (s *SyncApp) Run(ctx context.Context, cmd syncapp.RunSyncCommand) (syncapp.RunSyncResult, error) {
	started := time.Now()
	result, err := s.sync.Execute(ctx, cmd)
	if err != nil {
		return syncapp.RunSyncResult{}, err
	}

	metrics.SyncRunsTotal.Inc()
	metrics.SyncRunDuration.Observe(time.Since(started).Seconds())
	metrics.SyncItemsTotal.WithLabelValues("added").Add(float64(result.Added))
	metrics.SyncItemsTotal.WithLabelValues("updated").Add(float64(result.Updated))
	metrics.SyncItemsTotal.WithLabelValues("unchanged").Add(float64(result.Unchanged))
	metrics.SyncItemsTotal.WithLabelValues("skipped").Add(float64(result.Skipped))
	return result, nil
}

func (s *SyncApp) Close() error {
	if s.postgres != nil {
		return s.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
