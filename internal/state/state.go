package state

import (
	"animedb/client/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps the current ViewState of each browser session.
type Store interface {
	// Load returns the stored state, or the defaults when the session has none.
	Load(ctx context.Context, sessionID string) (domain.ViewState, error)
	Save(ctx context.Context, sessionID string, vs domain.ViewState) error
	// Update applies fn to the stored state and saves the result as one atomic
	// step, so concurrent actions on a session never overwrite each other.
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (domain.ViewState, error)
}

// UpdateFunc computes the next state. It may run more than once when a store
// retries after a conflicting write.
type UpdateFunc func(current domain.ViewState) domain.ViewState

const maxUpdateAttempts = 10

type redisStore struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisStore(redisClient *redis.Client, ttl time.Duration) Store {
	return &redisStore{
		redisClient: redisClient,
		keyPrefix:   "animedb:viewstate:",
		ttl:         ttl,
	}
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (domain.ViewState, error) {
	key := s.keyPrefix + sessionID
	val, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return domain.DefaultViewState(), nil // Fresh session
		}
		return domain.ViewState{}, fmt.Errorf("failed to get view state for session %s: %w", sessionID, err)
	}

	var vs domain.ViewState
	if err := json.Unmarshal([]byte(val), &vs); err != nil {
		return domain.ViewState{}, fmt.Errorf("failed to decode view state for session %s: %w", sessionID, err)
	}

	return vs.Normalize(), nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, vs domain.ViewState) error {
	payload, err := json.Marshal(vs)
	if err != nil {
		return fmt.Errorf("failed to encode view state: %w", err)
	}

	key := s.keyPrefix + sessionID
	if err := s.redisClient.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set view state for session %s: %w", sessionID, err)
	}
	return nil
}

func (s *redisStore) Update(ctx context.Context, sessionID string, fn UpdateFunc) (domain.ViewState, error) {
	key := s.keyPrefix + sessionID

	var next domain.ViewState
	txf := func(tx *redis.Tx) error {
		current := domain.DefaultViewState()
		val, err := tx.Get(ctx, key).Result()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			var vs domain.ViewState
			// An undecodable value is replaced rather than left to fail every action.
			if json.Unmarshal([]byte(val), &vs) == nil {
				current = vs.Normalize()
			}
		}

		next = fn(current)
		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode view state: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.redisClient.Watch(ctx, txf, key)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return domain.ViewState{}, fmt.Errorf("failed to update view state for session %s: %w", sessionID, err)
	}
	return domain.ViewState{}, fmt.Errorf("failed to update view state for session %s: too many concurrent writers", sessionID)
}

type memoryEntry struct {
	state   domain.ViewState
	touched time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore keeps state in process. Entries idle for longer than ttl are
// treated as absent; a zero ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryStore) Load(_ context.Context, sessionID string) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[sessionID]
	if !ok || s.expired(entry) {
		delete(s.entries, sessionID)
		return domain.DefaultViewState(), nil
	}
	return entry.state, nil
}

func (s *memoryStore) Save(_ context.Context, sessionID string, vs domain.ViewState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionID] = memoryEntry{state: vs, touched: s.now()}
	return nil
}

func (s *memoryStore) Update(_ context.Context, sessionID string, fn UpdateFunc) (domain.ViewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := domain.DefaultViewState()
	if entry, ok := s.entries[sessionID]; ok && !s.expired(entry) {
		current = entry.state
	}

	next := fn(current)
	s.entries[sessionID] = memoryEntry{state: next, touched: s.now()}
	return next, nil
}

// Prune drops expired sessions and reports how many were removed.
func (s *memoryStore) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

func (s *memoryStore) expired(entry memoryEntry) bool {
	return s.ttl > 0 && s.now().Sub(entry.touched) > s.ttl
}

// Pruner is implemented by stores that need periodic cleanup.
type Pruner interface {
	Prune() int
}
