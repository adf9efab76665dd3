package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/adapters/memory"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"
)

type fakeProvider struct {
	items      []ports.ProviderItem
	lastCutoff string
	streamErr  error
}

func (p *fakeProvider) Events(_ context.Context, changedSince string, yield func(ports.ProviderItem) error) error {
	p.lastCutoff = changedSince
	for _, item := range p.items {
		if err := yield(item); err != nil {
			return err
		}
	}
	return p.streamErr
}

func newJob(store *memory.Store, provider ports.ProviderSource) RunSyncUseCase {
	return RunSyncUseCase{
		Provider:    provider,
		Catalog:     store,
		Results:     store,
		Clock:       store,
		IDGenerator: store,
	}
}

func TestExecuteCountsOutcomesAndRecordsAudit(t *testing.T) {
	store := memory.NewStore()
	good := baseItem()
	malformed := baseItem()
	malformed.ID = "not-a-uuid"
	provider := &fakeProvider{items: []ports.ProviderItem{good, good, malformed}}

	result, err := newJob(store, provider).Execute(context.Background(), RunSyncCommand{Full: true})
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if result.Added != 1 || result.Unchanged != 1 || result.Skipped != 1 || result.Updated != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}

	audits := store.SyncResults()
	if len(audits) != 1 {
		t.Fatalf("expected exactly one audit row, got %d", len(audits))
	}
	if audits[0].AddedCount != 1 || audits[0].UpdatedCount != 0 {
		t.Fatalf("audit counts wrong: %+v", audits[0])
	}
	if result.Audit.ID != audits[0].ID {
		t.Fatalf("result must carry the stored audit row, got %+v", result.Audit)
	}
}

func TestExecuteRecordsAuditWhenEveryItemIsSkipped(t *testing.T) {
	store := memory.NewStore()
	malformed := baseItem()
	malformed.EventTime = "tomorrow"
	provider := &fakeProvider{items: []ports.ProviderItem{malformed, malformed}}

	result, err := newJob(store, provider).Execute(context.Background(), RunSyncCommand{Full: true})
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped, got %+v", result)
	}
	if len(store.SyncResults()) != 1 {
		t.Fatalf("an all-skipped run still records one audit row, got %d", len(store.SyncResults()))
	}
}

func TestExecuteRecordsAuditWhenStreamEndsEarly(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{
		items:     []ports.ProviderItem{baseItem()},
		streamErr: errors.New("stream interrupted"),
	}

	result, err := newJob(store, provider).Execute(context.Background(), RunSyncCommand{Full: true})
	if err != nil {
		t.Fatalf("execute must not surface the stream error, got %v", err)
	}
	if result.Added != 1 {
		t.Fatalf("items processed before the interruption must count, got %+v", result)
	}
	if len(store.SyncResults()) != 1 {
		t.Fatalf("interrupted run still records one audit row, got %d", len(store.SyncResults()))
	}
}

func TestExecuteFullSyncIgnoresWatermark(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{items: []ports.ProviderItem{baseItem()}}
	job := newJob(store, provider)

	if _, err := job.Execute(context.Background(), RunSyncCommand{Full: true}); err != nil {
		t.Fatalf("seeding run failed: %v", err)
	}
	if _, err := job.Execute(context.Background(), RunSyncCommand{Full: true}); err != nil {
		t.Fatalf("full run failed: %v", err)
	}
	if provider.lastCutoff != "" {
		t.Fatalf("full sync must not pass a cutoff, got %q", provider.lastCutoff)
	}
}

func TestExecuteUsesStoredWatermarkAsCutoff(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{items: []ports.ProviderItem{baseItem()}}
	job := newJob(store, provider)

	if _, err := job.Execute(context.Background(), RunSyncCommand{}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if provider.lastCutoff != "" {
		t.Fatalf("empty catalog must trigger a full sync, got cutoff %q", provider.lastCutoff)
	}

	if _, err := job.Execute(context.Background(), RunSyncCommand{}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	changedAt, _ := time.Parse("2006-01-02T15:04:05", baseItem().ChangedAt)
	want := changedAt.Format("2006-01-02")
	if provider.lastCutoff != want {
		t.Fatalf("expected stored watermark date %q as cutoff, got %q", want, provider.lastCutoff)
	}
}

func TestExecuteValidatesExplicitSinceDate(t *testing.T) {
	store := memory.NewStore()
	provider := &fakeProvider{}
	job := newJob(store, provider)

	_, err := job.Execute(context.Background(), RunSyncCommand{Since: "last tuesday"})
	if !errors.Is(err, domainerrors.ErrInvalidSinceDate) {
		t.Fatalf("expected ErrInvalidSinceDate, got %v", err)
	}

	result, err := job.Execute(context.Background(), RunSyncCommand{Since: "2026-01-10"})
	if err != nil {
		t.Fatalf("valid since date failed: %v", err)
	}
	if result.Cutoff != "2026-01-10" || provider.lastCutoff != "2026-01-10" {
		t.Fatalf("explicit since date must flow through, got result %q provider %q", result.Cutoff, provider.lastCutoff)
	}
}
