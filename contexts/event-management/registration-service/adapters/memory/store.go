package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/registration-service/domain/entities"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/registration-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/ports"
)

// Store is an in-memory adapter implementing the registration ports for
// local runtime and tests. It is not intended as production persistence.
type Store struct {
	mu            sync.Mutex
	events        map[string]ports.CatalogEvent
	registrations map[string]entities.Registration
	emailsByEvent map[string]map[string]struct{}
	messages      map[int64]entities.OutboxMessage
	nextOutboxID  int64
	sequence      uint64
	now           time.Time
}

func NewStore() *Store {
	return &Store{
		events:        make(map[string]ports.CatalogEvent),
		registrations: make(map[string]entities.Registration),
		emailsByEvent: make(map[string]map[string]struct{}),
		messages:      make(map[int64]entities.OutboxMessage),
		nextOutboxID:  1,
		now:           time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func (s *Store) SeedEvent(event ports.CatalogEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.EventID] = event
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) GetEvent(_ context.Context, eventID string) (ports.CatalogEvent, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	return event, ok, nil
}

func (s *Store) CreateRegistrationWithOutbox(
	_ context.Context,
	registration entities.Registration,
	notice ports.RegistrationNotice,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	emails, ok := s.emailsByEvent[registration.EventID]
	if !ok {
		emails = make(map[string]struct{})
		s.emailsByEvent[registration.EventID] = emails
	}
	if _, exists := emails[registration.Email]; exists {
		return domainerrors.ErrDuplicateRegistration
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		return err
	}

	emails[registration.Email] = struct{}{}
	s.registrations[registration.RegistrationID] = registration
	id := s.nextOutboxID
	s.nextOutboxID++
	s.messages[id] = entities.OutboxMessage{
		ID:        id,
		MessageID: fmt.Sprintf("msg-%08d", id),
		Topic:     entities.TopicRegistration,
		Payload:   payload,
		State:     entities.MessageStatePending,
	}
	return nil
}

func (s *Store) ListRegistrationsByEvent(_ context.Context, eventID string) ([]entities.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []entities.Registration
	for _, registration := range s.registrations {
		if registration.EventID == eventID {
			items = append(items, registration)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

// Claim mirrors the SQL store contract: selection, state transition and the
// attempts increment happen under one lock, so concurrent claims are disjoint.
func (s *Store) Claim(_ context.Context, batchSize int) ([]entities.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for id, message := range s.messages {
		if message.State == entities.MessageStatePending {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > batchSize {
		ids = ids[:batchSize]
	}

	claimed := make([]entities.OutboxMessage, 0, len(ids))
	for _, id := range ids {
		message := s.messages[id]
		message.State = entities.MessageStateProcessing
		message.Attempts++
		s.messages[id] = message
		claimed = append(claimed, message)
	}
	return claimed, nil
}

func (s *Store) MarkSent(_ context.Context, id int64) error {
	return s.transition(id, entities.MessageStateSent, "")
}

func (s *Store) MarkRetry(_ context.Context, id int64, deliveryErr string) error {
	return s.transition(id, entities.MessageStatePending, deliveryErr)
}

func (s *Store) MarkFailed(_ context.Context, id int64, deliveryErr string) error {
	return s.transition(id, entities.MessageStateFailed, deliveryErr)
}

func (s *Store) transition(id int64, state entities.MessageState, deliveryErr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	message, ok := s.messages[id]
	if !ok {
		return domainerrors.ErrMessageNotFound
	}
	message.State = state
	message.LastError = deliveryErr
	s.messages[id] = message
	return nil
}

// Messages returns a snapshot of all outbox rows in id order.
func (s *Store) Messages() []entities.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.OutboxMessage, 0, len(s.messages))
	for _, message := range s.messages {
		items = append(items, message)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence++
	return fmt.Sprintf("reg-%08d", s.sequence), nil
}

func (s *Store) NewCode() string {
	return "123456"
}
