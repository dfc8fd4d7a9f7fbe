// Package activity keeps the bounded, newest-first feed of party events.
// The feed is for display only and is not persisted.
package activity

import (
	"sync"

	"github.com/KirkDiggler/partybac/internal/models"
)

// DefaultCapacity is the number of entries kept when no capacity is configured
const DefaultCapacity = 50

// Log is a bounded journal of activity entries, newest first
type Log struct {
	mu       sync.RWMutex
	capacity int
	entries  []*models.ActivityEntry
}

// Config holds configuration for the activity log
type Config struct {
	// Capacity is the maximum number of entries kept
	Capacity int
}

// New creates an empty log
func New(cfg *Config) *Log {
	capacity := DefaultCapacity
	if cfg != nil && cfg.Capacity > 0 {
		capacity = cfg.Capacity
	}
	return &Log{
		capacity: capacity,
		entries:  make([]*models.ActivityEntry, 0, capacity+1),
	}
}

// Record inserts entry at the front, dropping the oldest entry once the log is over capacity
func (l *Log) Record(entry *models.ActivityEntry) {
	if entry == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, nil)
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry

	if len(l.entries) > l.capacity {
		l.entries[len(l.entries)-1] = nil
		l.entries = l.entries[:l.capacity]
	}
}

// List returns the entries, newest first. The slice is a copy.
func (l *Log) List() []*models.ActivityEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*models.ActivityEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Capacity returns the maximum number of entries kept
func (l *Log) Capacity() int {
	return l.capacity
}

// Reset removes all entries
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.entries)
	l.entries = l.entries[:0]
}
