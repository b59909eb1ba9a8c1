package store

import (
	"errors"
	"sync"
	"time"

	"github.com/i474232898/gridsight-site-planner/internal/solar"
)

var (
	// ErrNotFound is returned when no fresh entry is cached for a location.
	ErrNotFound = errors.New("no solar data cached for location")
)

// MemoryStore is a concurrency-safe in-memory cache of solar lookups.
type MemoryStore struct {
	mu sync.RWMutex

	// key: location key
	data map[string]solar.Entry

	// retention configuration
	maxEntries int           // max number of cached locations
	maxAge     time.Duration // optional max age for entries

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries or maxAge is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]solar.Entry),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save stores an entry, replacing any previous one for the same location, and
// evicts the oldest entries past the size limit.
func (s *MemoryStore) Save(entry solar.Entry) {
	key := entry.Location.Key()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = entry

	for s.maxEntries > 0 && len(s.data) > s.maxEntries {
		var (
			oldestKey string
			oldest    time.Time
			first     = true
		)
		for k, e := range s.data {
			if first || e.FetchedAt.Before(oldest) {
				oldestKey, oldest, first = k, e.FetchedAt, false
			}
		}
		delete(s.data, oldestKey)
	}
}

// Get returns the cached entry for a location if it has not expired.
func (s *MemoryStore) Get(loc solar.Location) (solar.Entry, error) {
	key := loc.Key()

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.data[key]
	if !ok || s.expired(entry, s.now()) {
		return solar.Entry{}, ErrNotFound
	}
	return entry, nil
}

// Prune drops expired entries and returns how many were removed.
func (s *MemoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if s.expired(e, now) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, including expired ones not yet pruned.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) expired(e solar.Entry, now time.Time) bool {
	return s.maxAge > 0 && e.FetchedAt.Before(now.Add(-s.maxAge))
}
