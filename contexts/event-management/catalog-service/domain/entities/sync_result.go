package entities

import "time"

// SyncResult is the immutable audit record written once per sync run.
type SyncResult struct {
	ID           int64
	ExecutedAt   time.Time
	AddedCount   int
	UpdatedCount int
}
