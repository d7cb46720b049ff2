// Package history provides a bounded in-memory FIFO store for recent
// communication patterns and response log entries. One store per monitoring
// zone; insertion order defines recency.
package history

import "sync"

// Store is a bounded ordered sequence. Appends evict the oldest entries once
// the bound is exceeded. All operations are safe for concurrent use, but the
// recurrence heuristics upstream assume a single writer appending in arrival
// order.
type Store[T any] struct {
	mu      sync.Mutex
	entries []T
	bound   int
}

// New creates a store holding at most bound entries. A non-positive bound is
// treated as 1 so the store always retains the most recent entry.
func New[T any](bound int) *Store[T] {
	if bound <= 0 {
		bound = 1
	}
	return &Store[T]{bound: bound}
}

// Append adds an entry at the tail, evicting from the head if the bound is
// exceeded. The bound check happens under the same lock as the append so
// concurrent appenders cannot lose or duplicate evictions.
func (s *Store[T]) Append(entry T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if len(s.entries) > s.bound {
		overflow := len(s.entries) - s.bound
		s.entries = append(s.entries[:0], s.entries[overflow:]...)
	}
}

// Recent returns the last k entries in insertion order, most recent last.
// k larger than the stored count returns everything.
func (s *Store[T]) Recent(k int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if k <= 0 {
		return nil
	}
	if k > len(s.entries) {
		k = len(s.entries)
	}
	out := make([]T, k)
	copy(out, s.entries[len(s.entries)-k:])
	return out
}

// CountMatching counts entries satisfying pred over the last window entries.
func (s *Store[T]) CountMatching(pred func(T) bool, window int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if window <= 0 {
		return 0
	}
	if window > len(s.entries) {
		window = len(s.entries)
	}
	count := 0
	for _, e := range s.entries[len(s.entries)-window:] {
		if pred(e) {
			count++
		}
	}
	return count
}

// Len returns the current number of stored entries.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Bound returns the configured maximum size.
func (s *Store[T]) Bound() int {
	return s.bound
}
