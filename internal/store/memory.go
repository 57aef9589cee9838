package store

import (
	"errors"
	"sync"

	"github.com/i474232898/bike-rental-aggregation/internal/rental"
)

var (
	// ErrNotFound is returned when no dataset has been loaded yet.
	ErrNotFound = errors.New("no dataset loaded")
)

// MemoryStore is a concurrency-safe in-memory history of loaded snapshots.
// Snapshots are immutable; Save only ever swaps which one is latest.
type MemoryStore struct {
	mu sync.RWMutex

	// oldest first
	snapshots []rental.Snapshot

	maxHistory int // max number of snapshots kept
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, only the latest snapshot is kept.
func NewMemoryStore(maxHistory int) *MemoryStore {
	if maxHistory <= 0 {
		maxHistory = 1
	}
	return &MemoryStore{maxHistory: maxHistory}
}

// Save appends a snapshot, makes it the latest and enforces retention.
func (s *MemoryStore) Save(snapshot rental.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots = append(s.snapshots, snapshot)

	if len(s.snapshots) > s.maxHistory {
		over := len(s.snapshots) - s.maxHistory
		// release references so dropped datasets can be collected
		for i := 0; i < over; i++ {
			s.snapshots[i] = rental.Snapshot{}
		}
		s.snapshots = s.snapshots[over:]
	}
}

// Latest returns the most recently saved snapshot.
func (s *MemoryStore) Latest() (rental.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snapshots) == 0 {
		return rental.Snapshot{}, ErrNotFound
	}
	return s.snapshots[len(s.snapshots)-1], nil
}

// History returns the retained snapshots, newest first.
func (s *MemoryStore) History() []rental.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]rental.Snapshot, 0, len(s.snapshots))
	for i := len(s.snapshots) - 1; i >= 0; i-- {
		out = append(out, s.snapshots[i])
	}
	return out
}
