package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "github.com/RadikAgl/events/contexts/event-management/registration-service/application"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/domain/entities"
	domainerrors "github.com/RadikAgl/events/contexts/event-management/registration-service/domain/errors"
	"github.com/RadikAgl/events/contexts/event-management/registration-service/ports"
)

type RegisterAttendeeCommand struct {
	EventID  string
	FullName string
	Email    string
}

type RegisterAttendeeResult struct {
	Registration entities.Registration
}

type RegisterAttendeeUseCase struct {
	Catalog       ports.EventCatalog
	Registrations ports.RegistrationRepository
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Codes         ports.CodeGenerator
	Logger        *slog.Logger
}

// Execute runs the registration workflow in this order:
// 1) catalog lookup and open-window check
// 2) confirmation code generation
// 3) atomic registration + outbox persistence.
func (u RegisterAttendeeUseCase) Execute(ctx context.Context, cmd RegisterAttendeeCommand) (RegisterAttendeeResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(cmd.EventID) == "" {
		return RegisterAttendeeResult{}, domainerrors.ErrInvalidRegistration
	}

	event, found, err := u.Catalog.GetEvent(ctx, cmd.EventID)
	if err != nil {
		logger.Error("catalog lookup failed",
			"event", "register_attendee_catalog_lookup_failed",
			"module", "event-management/registration-service",
			"layer", "application",
			"event_id", cmd.EventID,
			"error", err.Error(),
		)
		return RegisterAttendeeResult{}, err
	}
	if !found {
		return RegisterAttendeeResult{}, domainerrors.ErrEventNotFound
	}
	if !event.Open {
		return RegisterAttendeeResult{}, domainerrors.ErrRegistrationClosed
	}

	registrationID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return RegisterAttendeeResult{}, err
	}

	registration, err := entities.NewRegistration(
		registrationID,
		cmd.EventID,
		cmd.FullName,
		cmd.Email,
		u.Codes.NewCode(),
		u.Clock.Now(),
	)
	if err != nil {
		return RegisterAttendeeResult{}, err
	}

	notice := ports.RegistrationNotice{
		RegistrationID:   registration.RegistrationID,
		EventID:          registration.EventID,
		FullName:         registration.FullName,
		Email:            registration.Email,
		ConfirmationCode: registration.ConfirmationCode,
	}
	if err := u.Registrations.CreateRegistrationWithOutbox(ctx, registration, notice); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateRegistration) {
			logger.Warn("duplicate registration rejected",
				"event", "register_attendee_duplicate",
				"module", "event-management/registration-service",
				"layer", "application",
				"event_id", cmd.EventID,
			)
			return RegisterAttendeeResult{}, err
		}
		logger.Error("registration persistence failed",
			"event", "register_attendee_persist_failed",
			"module", "event-management/registration-service",
			"layer", "application",
			"event_id", cmd.EventID,
			"error", err.Error(),
		)
		return RegisterAttendeeResult{}, err
	}

	logger.Info("attendee registered",
		"event", "register_attendee_completed",
		"module", "event-management/registration-service",
		"layer", "application",
		"event_id", cmd.EventID,
		"registration_id", registration.RegistrationID,
	)
	return RegisterAttendeeResult{Registration: registration}, nil
}
