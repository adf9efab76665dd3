package ports

import (
	"context"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/registration-service/domain/entities"
)

// RegistrationNotice is the outbox payload written for topic "registration".
type RegistrationNotice struct {
	RegistrationID   string `json:"registration_id"`
	EventID          string `json:"event_id"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	ConfirmationCode string `json:"confirmation_code"`
}

// CatalogEvent is the minimal view of a catalog event needed to accept a registration.
type CatalogEvent struct {
	EventID string
	Name    string
	Open    bool
}

// EventCatalog resolves catalog events owned by the catalog-service module.
type EventCatalog interface {
	GetEvent(ctx context.Context, eventID string) (CatalogEvent, bool, error)
}

// RegistrationRepository owns registration persistence.
type RegistrationRepository interface {
	// CreateRegistrationWithOutbox must atomically persist the registration
	// and its pending outbox row in one transaction.
	CreateRegistrationWithOutbox(ctx context.Context, registration entities.Registration, notice RegistrationNotice) error
	ListRegistrationsByEvent(ctx context.Context, eventID string) ([]entities.Registration, error)
}

// OutboxStore is the delivery worker's claim/outcome surface.
type OutboxStore interface {
	// Claim atomically selects up to batchSize pending messages in id order,
	// skipping rows locked by concurrent claimants, transitions them to
	// processing and increments attempts by exactly one. The returned
	// messages carry the post-increment snapshot. Two concurrent claims
	// never return the same row.
	Claim(ctx context.Context, batchSize int) ([]entities.OutboxMessage, error)
	MarkSent(ctx context.Context, id int64) error
	// MarkRetry returns the message to pending with the delivery error recorded.
	MarkRetry(ctx context.Context, id int64, deliveryErr string) error
	// MarkFailed parks the message; it is never claimed again.
	MarkFailed(ctx context.Context, id int64, deliveryErr string) error
}

// NotificationGateway is the external delivery collaborator. Send reports
// the outcome as a value; transport failures are false, never an error.
type NotificationGateway interface {
	Send(ctx context.Context, messageID string, email string, fullName string, code string) bool
}

// Clock allows deterministic testing of timestamps.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts registration/message identifier generation.
type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// CodeGenerator produces confirmation codes for registrations.
type CodeGenerator interface {
	NewCode() string
}
