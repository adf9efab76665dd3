package services

import (
	"testing"
	"time"

	"github.com/RadikAgl/events/contexts/event-management/catalog-service/domain/entities"
)

func TestParseTimestampAcceptsOffsetAndOffsetlessValues(t *testing.T) {
	withOffset, err := ParseTimestamp("2026-03-01T10:00:00+03:00")
	if err != nil {
		t.Fatalf("offset value failed to parse: %v", err)
	}
	if !withOffset.Equal(time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("offset value parsed to %v", withOffset)
	}

	withoutOffset, err := ParseTimestamp("2026-03-01T10:00:00")
	if err != nil {
		t.Fatalf("offsetless value failed to parse: %v", err)
	}
	if !withoutOffset.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("offsetless value must be read as UTC, got %v", withoutOffset)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "  ", "yesterday", "2026-13-45T99:00:00"} {
		if _, err := ParseTimestamp(value); err == nil {
			t.Errorf("expected error for %q", value)
		}
	}
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name     string
		status   string
		deadline string
		want     entities.EventStatus
	}{
		{"new with future deadline", "new", "2026-02-01T00:00:00", entities.EventStatusOpen},
		{"published with future deadline", "Published", "2026-02-01T00:00:00Z", entities.EventStatusOpen},
		{"status with padding", "  new  ", "2026-02-01T00:00:00", entities.EventStatusOpen},
		{"past deadline", "new", "2026-01-01T00:00:00", entities.EventStatusClosed},
		{"deadline exactly now", "new", "2026-01-15T12:00:00", entities.EventStatusClosed},
		{"cancelled status", "cancelled", "2026-02-01T00:00:00", entities.EventStatusClosed},
		{"unknown status", "draft", "2026-02-01T00:00:00", entities.EventStatusClosed},
		{"unparseable deadline", "new", "soon", entities.EventStatusClosed},
		{"missing deadline", "new", "", entities.EventStatusClosed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.status, tc.deadline, now)
			if got != tc.want {
				t.Fatalf("DeriveStatus(%q, %q) = %s, want %s", tc.status, tc.deadline, got, tc.want)
			}
		})
	}
}
