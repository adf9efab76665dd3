package errors

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrInvalidSinceDate = errors.New("since date must be formatted as YYYY-MM-DD")
)
