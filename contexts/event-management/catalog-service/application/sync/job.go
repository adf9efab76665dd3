package sync

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "github.com/RadikAgl/events/contexts/event-management/catalog-service/application"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

const cutoffDateLayout = "2006-01-02"

type RunSyncCommand struct {
	// Full forces a complete resync regardless of stored watermarks.
	Full bool
	// Since is an explicit YYYY-MM-DD cutoff; empty defers to the stored
	// watermark (or a full sync when the catalog is empty).
	Since string
}

type RunSyncResult struct {
	Full      bool
	Cutoff    string
	Added     int
	Updated   int
	Unchanged int
	Skipped   int
	Audit     entities.SyncResult
}

// RunSyncUseCase orchestrates one catalog synchronization run: it picks the
// cutoff, streams provider pages, feeds every item to the upsert engine with
// per-item isolation, and records exactly one audit row even when the stream
// aborted early or every item was skipped.
type RunSyncUseCase struct {
	Provider    ports.ProviderSource
	Catalog     ports.CatalogRepository
	Results     ports.SyncResultRepository
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u RunSyncUseCase) Execute(ctx context.Context, cmd RunSyncCommand) (RunSyncResult, error) {
	logger := application.ResolveLogger(u.Logger)

	cutoff, err := u.resolveCutoff(ctx, cmd)
	if err != nil {
		return RunSyncResult{}, err
	}

	logger.Info("catalog sync started",
		"event", "catalog_sync_started",
		"module", "event-management/catalog-service",
		"layer", "application",
		"full", cutoff == "",
		"cutoff", cutoff,
	)

	engine := UpsertEngine{
		Catalog:     u.Catalog,
		Clock:       u.Clock,
		IDGenerator: u.IDGenerator,
		Logger:      u.Logger,
	}

	result := RunSyncResult{Full: cutoff == "", Cutoff: cutoff}
	streamErr := u.Provider.Events(ctx, cutoff, func(item ports.ProviderItem) error {
		switch engine.Apply(ctx, item).Outcome {
		case OutcomeAdded:
			result.Added++
		case OutcomeUpdated:
			result.Updated++
		case OutcomeUnchanged:
			result.Unchanged++
		case OutcomeSkipped:
			result.Skipped++
		}
		return nil
	})
	if streamErr != nil {
		// The provider stream only fails on cancellation; the run still
		// records what it managed to process.
		logger.Warn("provider stream ended early",
			"event", "catalog_sync_stream_interrupted",
			"module", "event-management/catalog-service",
			"layer", "application",
			"error", streamErr.Error(),
		)
	}

	audit, err := u.Results.CreateSyncResult(ctx, entities.SyncResult{
		ExecutedAt:   u.Clock.Now().UTC(),
		AddedCount:   result.Added,
		UpdatedCount: result.Updated,
	})
	if err != nil {
		logger.Error("sync result persistence failed",
			"event", "catalog_sync_audit_failed",
			"module", "event-management/catalog-service",
			"layer", "application",
			"error", err.Error(),
		)
		return result, err
	}
	result.Audit = audit

	logger.Info("catalog sync completed",
		"event", "catalog_sync_completed",
		"module", "event-management/catalog-service",
		"layer", "application",
		"added", result.Added,
		"updated", result.Updated,
		"unchanged", result.Unchanged,
		"skipped", result.Skipped,
	)
	return result, nil
}

// resolveCutoff chooses the starting point: full resync, an explicit caller
// date, or the newest stored watermark (full sync when the catalog is empty).
func (u RunSyncUseCase) resolveCutoff(ctx context.Context, cmd RunSyncCommand) (string, error) {
	if cmd.Full {
		return "", nil
	}

	if since := strings.TrimSpace(cmd.Since); since != "" {
		if _, err := time.Parse(cutoffDateLayout, since); err != nil {
			return "", domainerrors.ErrInvalidSinceDate
		}
		return since, nil
	}

	watermark, ok, err := u.Catalog.MaxChangedAt(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return watermark.UTC().Format(cutoffDateLayout), nil
}
