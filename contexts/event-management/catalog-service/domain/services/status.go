package services

import (
	"errors"
	"strings"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
)

var errEmptyTimestamp = errors.New("empty timestamp")

// timestampLayouts accepts provider timestamps with or without a zone offset;
// offset-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses a provider timestamp string.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyTimestamp
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// DeriveStatus computes the registration window state of a provider record.
// The event is open only when the raw status says so AND the registration
// deadline both parses and lies strictly in the future; any parse failure or
// past-due deadline closes the event.
func DeriveStatus(rawStatus string, registrationDeadline string, now time.Time) entities.EventStatus {
	switch strings.ToLower(strings.TrimSpace(rawStatus)) {
	case "new", "published":
	default:
		return entities.EventStatusClosed
	}

	deadline, err := ParseTimestamp(registrationDeadline)
	if err != nil {
		return entities.EventStatusClosed
	}
	if deadline.After(now) {
		return entities.EventStatusOpen
	}
	return entities.EventStatusClosed
}
