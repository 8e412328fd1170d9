package storage

import "time"

// TaskRecord is the persisted shape of one task. Enum fields stay plain
// strings here; the store validates them against the domain model on load.
type TaskRecord struct {
	ID        string
	Text      string
	Completed bool
	Priority  string
	CreatedAt time.Time
}
