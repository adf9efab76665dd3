package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/registration-service/domain/entities"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/registration-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/ports"

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

func (r *Repository) GetEvent(ctx context.Context, eventID string) (ports.CatalogEvent, bool, error) {
	var row catalogEventModel
	err := r.db.WithContext(ctx).
		Select("id", "name", "status").
		Where("id = ?", eventID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogEvent{}, false, nil
		}
		return ports.CatalogEvent{}, false, err
	}
	return ports.CatalogEvent{
		EventID: row.ID,
		Name:    row.Name,
		Open:    row.Status == "open",
	}, true, nil
}

func (r *Repository) CreateRegistrationWithOutbox(
	ctx context.Context,
	registration entities.Registration,
	notice ports.RegistrationNotice,
) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		registrationRow := registrationModelFromEntity(registration)
		if err := tx.Create(&registrationRow).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrDuplicateRegistration
			}
			return err
		}

		outboxRow := outboxModel{
			MessageID: uuid.NewString(),
			Topic:     entities.TopicRegistration,
			Payload:   payload,
			State:     string(entities.MessageStatePending),
			CreatedAt: registration.CreatedAt.UTC(),
		}
		return tx.Create(&outboxRow).Error
	})
}

func (r *Repository) ListRegistrationsByEvent(ctx context.Context, eventID string) ([]entities.Registration, error) {
	var rows []registrationModel
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Registration, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// Claim selects up to batchSize pending rows in id order with
// FOR UPDATE SKIP LOCKED, moves them to processing and increments attempts,
// all inside one transaction. Rows locked by a concurrent claimant are
// excluded from the batch instead of being waited on.
func (r *Repository) Claim(ctx context.Context, batchSize int) ([]entities.OutboxMessage, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	var rows []outboxModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("state = ?", string(entities.MessageStatePending)).
			Order("id ASC").
			Limit(batchSize).
			Find(&rows).
			Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		if err := tx.Model(&outboxModel{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"state":    string(entities.MessageStateProcessing),
				"attempts": gorm.Expr("attempts + 1"),
			}).
			Error; err != nil {
			return err
		}

		// Reload so callers see the post-increment snapshot.
		return tx.
			Where("id IN ?", ids).
			Order("id ASC").
			Find(&rows).
			Error
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	return r.updateMessage(ctx, id, map[string]any{
		"state":      string(entities.MessageStateSent),
		"last_error": "",
	})
}

func (r *Repository) MarkRetry(ctx context.Context, id int64, deliveryErr string) error {
	return r.updateMessage(ctx, id, map[string]any{
		"state":      string(entities.MessageStatePending),
		"last_error": truncateError(deliveryErr),
	})
}

func (r *Repository) MarkFailed(ctx context.Context, id int64, deliveryErr string) error {
	return r.updateMessage(ctx, id, map[string]any{
		"state":      string(entities.MessageStateFailed),
		"last_error": truncateError(deliveryErr),
	})
}

func (r *Repository) updateMessage(ctx context.Context, id int64, values map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrMessageNotFound
	}
	return nil
}

const maxStoredErrorLen = 1000

func truncateError(deliveryErr string) string {
	if len(deliveryErr) > maxStoredErrorLen {
		return deliveryErr[:maxStoredErrorLen]
	}
	return deliveryErr
}

type registrationModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	EventID          string    `gorm:"column:event_id"`
	FullName         string    `gorm:"column:full_name"`
	Email            string    `gorm:"column:email"`
	ConfirmationCode string    `gorm:"column:confirmation_code"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (registrationModel) TableName() string {
	return "event_registrations"
}

func registrationModelFromEntity(registration entities.Registration) registrationModel {
	return registrationModel{
		ID:               registration.RegistrationID,
		EventID:          registration.EventID,
		FullName:         registration.FullName,
		Email:            registration.Email,
		ConfirmationCode: registration.ConfirmationCode,
		CreatedAt:        registration.CreatedAt.UTC(),
	}
}

func (m registrationModel) toEntity() entities.Registration {
	return entities.Registration{
		RegistrationID:   m.ID,
		EventID:          m.EventID,
		FullName:         m.FullName,
		Email:            m.Email,
		ConfirmationCode: m.ConfirmationCode,
		CreatedAt:        m.CreatedAt.UTC(),
	}
}

type outboxModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	MessageID string    `gorm:"column:message_id"`
	Topic     string    `gorm:"column:topic"`
	Payload   []byte    `gorm:"column:payload"`
	State     string    `gorm:"column:state"`
	Attempts  int       `gorm:"column:attempts"`
	LastError string    `gorm:"column:last_error"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (outboxModel) TableName() string {
	return "outbox_messages"
}

func (m outboxModel) toEntity() entities.OutboxMessage {
	return entities.OutboxMessage{
		ID:        m.ID,
		MessageID: m.MessageID,
		Topic:     m.Topic,
		Payload:   append([]byte(nil), m.Payload...),
		State:     entities.MessageState(m.State),
		Attempts:  m.Attempts,
		LastError: m.LastError,
	}
}

// catalogEventModel is a read-only projection of the events table owned by
// the catalog-service module; registration only needs the open/closed state.
type catalogEventModel struct {
	ID     string `gorm:"column:id"`
	Name   string `gorm:"column:name"`
	Status string `gorm:"column:status"`
}

func (catalogEventModel) TableName() string {
	return "events"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
