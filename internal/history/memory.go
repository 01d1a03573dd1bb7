package history

import (
	"sync"
	"time"
)

// Memory is an in-memory store for testing.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
}

// NewMemory creates a new in-memory store.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// Record appends a run outcome.
func (m *Memory) Record(entry Entry) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.nextID
	m.nextID++
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries = append(m.entries, entry)
	return entry, nil
}

// Recent returns the most recent entries, newest first.
func (m *Memory) Recent(limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, m.entries[i])
	}
	return out, nil
}

// Close is a no-op for memory store.
func (m *Memory) Close() error {
	return nil
}
