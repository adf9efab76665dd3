package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
	"github.com/RadikAgl/events/contexts/event-management/catalog-service/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) GetOrCreateVenue(ctx context.Context, externalID string, name string) (entities.Venue, error) {
	row := venueModel{
		ID:         uuid.NewString(),
		ExternalID: externalID,
		Name:       name,
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return entities.Venue{}, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return row.toEntity(), nil
	}

	var existing venueModel
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&existing).
		Error; err != nil {
		return entities.Venue{}, err
	}
	return existing.toEntity(), nil
}

func (r *Repository) FindEventByExternalID(ctx context.Context, externalID string) (entities.Event, bool, error) {
	var row eventModel
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Event{}, false, nil
		}
		return entities.Event{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateEvent(ctx context.Context, event entities.Event) error {
	row := eventModelFromEntity(event)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		// Two racing first-sight syncs can collide on external_id; the loser
		// observes the winner's row on its next run.
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func (r *Repository) UpdateEvent(ctx context.Context, event entities.Event) error {
	var changedAt *time.Time
	if !event.ChangedAt.IsZero() {
		utc := event.ChangedAt.UTC()
		changedAt = &utc
	}
	return r.db.WithContext(ctx).
		Model(&eventModel{}).
		Where("id = ?", event.EventID).
		Updates(map[string]any{
			"name":       event.Name,
			"event_date": event.EventDate.UTC(),
			"status":     string(event.Status),
			"changed_at": changedAt,
			"venue_id":   event.VenueID,
		}).
		Error
}

func (r *Repository) MaxChangedAt(ctx context.Context) (time.Time, bool, error) {
	var watermark *time.Time
	err := r.db.WithContext(ctx).
		Model(&eventModel{}).
		Select("MAX(changed_at)").
		Scan(&watermark).
		Error
	if err != nil {
		return time.Time{}, false, err
	}
	if watermark == nil {
		return time.Time{}, false, nil
	}
	return watermark.UTC(), true, nil
}

func (r *Repository) ListEvents(ctx context.Context, filter ports.EventFilter) ([]entities.Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	tx := r.db.WithContext(ctx).Model(&eventModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.NameQuery != "" {
		tx = tx.Where("name ILIKE ?", "%"+filter.NameQuery+"%")
	}
	if filter.DateFrom != nil {
		tx = tx.Where("event_date >= ?", filter.DateFrom.UTC())
	}
	if filter.DateTo != nil {
		tx = tx.Where("event_date <= ?", filter.DateTo.UTC())
	}

	var rows []eventModel
	if err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: "event_date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "name"}, Desc: false}).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Event, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetEvent(ctx context.Context, eventID string) (entities.Event, bool, error) {
	var row eventModel
	err := r.db.WithContext(ctx).
		Where("id = ?", eventID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Event{}, false, nil
		}
		return entities.Event{}, false, err
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateSyncResult(ctx context.Context, result entities.SyncResult) (entities.SyncResult, error) {
	row := syncResultModel{
		ExecutedAt:   result.ExecutedAt.UTC(),
		AddedCount:   result.AddedCount,
		UpdatedCount: result.UpdatedCount,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.SyncResult{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListSyncResults(ctx context.Context, limit int) ([]entities.SyncResult, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []syncResultModel
	if err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "executed_at"}, Desc: true}).
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.SyncResult, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

type venueModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	ExternalID string `gorm:"column:external_id"`
	Name       string `gorm:"column:name"`
}

func (venueModel) TableName() string {
	return "venues"
}

func (m venueModel) toEntity() entities.Venue {
	return entities.Venue{
		VenueID:    m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
	}
}

type eventModel struct {
	ID         string     `gorm:"column:id;primaryKey"`
	ExternalID string     `gorm:"column:external_id"`
	Name       string     `gorm:"column:name"`
	EventDate  time.Time  `gorm:"column:event_date"`
	ChangedAt  *time.Time `gorm:"column:changed_at"`
	Status     string     `gorm:"column:status"`
	VenueID    *string    `gorm:"column:venue_id"`
}

func (eventModel) TableName() string {
	return "events"
}

func eventModelFromEntity(event entities.Event) eventModel {
	row := eventModel{
		ID:         event.EventID,
		ExternalID: event.ExternalID,
		Name:       event.Name,
		EventDate:  event.EventDate.UTC(),
		Status:     string(event.Status),
		VenueID:    event.VenueID,
	}
	if !event.ChangedAt.IsZero() {
		utc := event.ChangedAt.UTC()
		row.ChangedAt = &utc
	}
	return row
}

func (m eventModel) toEntity() entities.Event {
	event := entities.Event{
		EventID:    m.ID,
		ExternalID: m.ExternalID,
		Name:       m.Name,
		EventDate:  m.EventDate.UTC(),
		Status:     entities.EventStatus(m.Status),
		VenueID:    m.VenueID,
	}
	if m.ChangedAt != nil {
		event.ChangedAt = m.ChangedAt.UTC()
	}
	return event
}

type syncResultModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ExecutedAt   time.Time `gorm:"column:executed_at"`
	AddedCount   int       `gorm:"column:added_count"`
	UpdatedCount int       `gorm:"column:updated_count"`
}

func (syncResultModel) TableName() string {
	return "sync_results"
}

func (m syncResultModel) toEntity() entities.SyncResult {
	return entities.SyncResult{
		ID:           m.ID,
		ExecutedAt:   m.ExecutedAt.UTC(),
		AddedCount:   m.AddedCount,
		UpdatedCount: m.UpdatedCount,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
