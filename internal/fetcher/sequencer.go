package fetcher

import (
	"sync"
	"time"
)

// Sequencer hands out monotonically increasing request numbers per key so a
// response can tell whether a newer request was issued after it.
type Sequencer struct {
	mu      sync.Mutex
	entries map[string]sequenceEntry
	locks   map[string]*keyLock
	now     func() time.Time
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

type sequenceEntry struct {
	latest  uint64
	touched time.Time
}

func NewSequencer() *Sequencer {
	return &Sequencer{
		entries: make(map[string]sequenceEntry),
		locks:   make(map[string]*keyLock),
		now:     time.Now,
	}
}

func (s *Sequencer) Next(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.entries[key]
	entry.latest++
	entry.touched = s.now()
	s.entries[key] = entry
	return entry.latest
}

// Lock serializes callers sharing key until the returned unlock is called.
// Taking a number with Next while holding the lock orders request numbers the
// same way as the state changes made under it.
func (s *Sequencer) Lock(key string) (unlock func()) {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()

			s.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, key)
			}
			s.mu.Unlock()
		})
	}
}

func (s *Sequencer) IsLatest(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	// A pruned key has no newer request either.
	return !ok || entry.latest == seq
}

// Prune forgets keys with no request issued within maxAge.
func (s *Sequencer) Prune(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxAge)
	removed := 0
	for key, entry := range s.entries {
		if entry.touched.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}
