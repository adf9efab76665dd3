package entities

import (
	"net/mail"
	"strings"
	"time"

	domainerrors "github.com/RadikAgl/events/contexts/event-management/registration-service/domain/errors"
)

type Registration struct {
	RegistrationID   string
	EventID          string
	FullName         string
	Email            string
	ConfirmationCode string
	CreatedAt        time.Time
}

func NewRegistration(
	registrationID string,
	eventID string,
	fullName string,
	email string,
	confirmationCode string,
	createdAt time.Time,
) (Registration, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(email)
	if strings.TrimSpace(registrationID) == "" ||
		strings.TrimSpace(eventID) == "" ||
		fullName == "" ||
		confirmationCode == "" {
		return Registration{}, domainerrors.ErrInvalidRegistration
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return Registration{}, domainerrors.ErrInvalidRegistration
	}

	return Registration{
		RegistrationID:   registrationID,
		EventID:          eventID,
		FullName:         fullName,
		Email:            email,
		ConfirmationCode: confirmationCode,
		CreatedAt:        createdAt.UTC(),
	}, nil
}
