package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/RadikAgl/events/contexts/event-management/registration-service/adapters/memory"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/registration-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/ports"
)

func newUseCase(store *memory.Store) RegisterAttendeeUseCase {
	return RegisterAttendeeUseCase{
		Catalog:       store,
		Registrations: store,
		Clock:         store,
		IDGenerator:   store,
		Codes:         store,
	}
}

func TestRegisterAttendeeCreatesRegistrationAndOutboxMessage(t *testing.T) {
	store := memory.NewStore()
	store.SeedEvent(ports.CatalogEvent{EventID: "event-1", Name: "Go Meetup", Open: true})
	useCase := newUseCase(store)

	result, err := useCase.Execute(context.Background(), RegisterAttendeeCommand{
		EventID:  "event-1",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if result.Registration.ConfirmationCode == "" {
		t.Fatal("expected a confirmation code to be assigned")
	}

	messages := store.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected exactly one outbox message, got %d", len(messages))
	}
	if messages[0].Attempts != 0 {
		t.Fatalf("expected fresh message with zero attempts, got %d", messages[0].Attempts)
	}
}

func TestRegisterAttendeeRejectsUnknownEvent(t *testing.T) {
	store := memory.NewStore()
	useCase := newUseCase(store)

	_, err := useCase.Execute(context.Background(), RegisterAttendeeCommand{
		EventID:  "missing",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	})
	if !errors.Is(err, domainerrors.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestRegisterAttendeeRejectsClosedEvent(t *testing.T) {
	store := memory.NewStore()
	store.SeedEvent(ports.CatalogEvent{EventID: "event-1", Name: "Go Meetup", Open: false})
	useCase := newUseCase(store)

	_, err := useCase.Execute(context.Background(), RegisterAttendeeCommand{
		EventID:  "event-1",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	})
	if !errors.Is(err, domainerrors.ErrRegistrationClosed) {
		t.Fatalf("expected ErrRegistrationClosed, got %v", err)
	}
}

func TestRegisterAttendeeRejectsDuplicateEmailPerEvent(t *testing.T) {
	store := memory.NewStore()
	store.SeedEvent(ports.CatalogEvent{EventID: "event-1", Name: "Go Meetup", Open: true})
	useCase := newUseCase(store)

	cmd := RegisterAttendeeCommand{
		EventID:  "event-1",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	}
	if _, err := useCase.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first register returned error: %v", err)
	}
	_, err := useCase.Execute(context.Background(), cmd)
	if !errors.Is(err, domainerrors.ErrDuplicateRegistration) {
		t.Fatalf("expected ErrDuplicateRegistration, got %v", err)
	}

	if len(store.Messages()) != 1 {
		t.Fatalf("duplicate must not enqueue a second outbox message, got %d", len(store.Messages()))
	}
}

func TestRegisterAttendeeRejectsInvalidEmail(t *testing.T) {
	store := memory.NewStore()
	store.SeedEvent(ports.CatalogEvent{EventID: "event-1", Name: "Go Meetup", Open: true})
	useCase := newUseCase(store)

	_, err := useCase.Execute(context.Background(), RegisterAttendeeCommand{
		EventID:  "event-1",
		FullName: "Ada Lovelace",
		Email:    "not-an-address",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRegistration) {
		t.Fatalf("expected ErrInvalidRegistration, got %v", err)
	}
	if len(store.Messages()) != 0 {
		t.Fatal("invalid registration must not enqueue an outbox message")
	}
}
