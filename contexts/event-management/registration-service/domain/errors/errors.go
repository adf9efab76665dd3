package errors

import "errors"

var (
	ErrInvalidRegistration   = errors.New("invalid registration request")
	ErrEventNotFound         = errors.New("event not found")
	ErrRegistrationClosed    = errors.New("event is closed for registration")
	ErrDuplicateRegistration = errors.New("email already registered for this event")
	ErrMessageNotFound       = errors.New("outbox message not found")
)
