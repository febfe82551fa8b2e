// Package snapshotstore holds the single current market snapshot. It has one
// writer (the refresher's cycle completion) and any number of readers.
package snapshotstore

import (
	"sync"
	"time"

	"github.com/coinwatchd/coinwatch/internal/domain"
)

// Store guards one domain.Snapshot. After Close all writes are dropped;
// reads keep returning the last installed value.
type Store struct {
	mu     sync.RWMutex
	snap   domain.Snapshot
	closed bool
}

// New creates a store seeded with the given records as fallback data, so
// readers never observe an empty list before the first cycle completes.
func New(initial []domain.Coin) *Store {
	return &Store{
		snap: domain.Snapshot{
			Records: initial,
			Source:  domain.SourceFallback,
		},
	}
}

// Current returns the snapshot as of the most recently completed cycle.
func (s *Store) Current() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Begin marks a cycle in flight. Records, timestamp and error stay untouched
// until the cycle completes.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.snap.Refreshing = true
}

// ApplySuccess installs a fresh record set from a successful fetch and clears
// any previous advisory error.
func (s *Store) ApplySuccess(records []domain.Coin, completedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.snap = domain.Snapshot{
		Records:     records,
		LastUpdated: completedAt,
		Source:      domain.SourceLive,
	}
}

// ApplyFallback installs the fallback dataset together with an advisory
// message describing why live data is not shown.
func (s *Store) ApplyFallback(records []domain.Coin, completedAt time.Time, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.snap = domain.Snapshot{
		Records:     records,
		LastUpdated: completedAt,
		LastError:   msg,
		Source:      domain.SourceFallback,
	}
}

// Close releases the store. Any write arriving afterwards, including the
// completion of a cycle that was in flight at teardown, is silently dropped.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.snap.Refreshing = false
}
