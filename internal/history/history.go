// Package history provides persistence for machine run outcomes.
package history

import "time"

// Entry is one recorded run: the program it ran and the output it
// produced.
type Entry struct {
	ID        int64
	Name      string
	Steps     int
	Ones      int
	Undefined bool
	Aborted   bool
	CreatedAt time.Time
}

// Store is the interface for run-outcome persistence.
type Store interface {
	// Record appends a run outcome and returns its entry with ID and
	// timestamp filled in.
	Record(entry Entry) (Entry, error)
	// Recent returns the most recent entries, newest first. A limit of 0
	// means no limit.
	Recent(limit int) ([]Entry, error)
	// Close releases resources.
	Close() error
}
