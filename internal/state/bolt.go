package state

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"animedb/client/internal/domain"

	bolt "go.etcd.io/bbolt"
)

const (
	boltFileMode = 0600
	boltDirMode  = 0755
)

var sessionsBucket = []byte("viewstate")

type boltRecord struct {
	State   domain.ViewState `json:"state"`
	Touched time.Time        `json:"touched"`
}

// BoltStore persists view state in a local bbolt file so sessions survive restarts
// of a single instance.
type BoltStore struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

func NewBoltStore(path string, ttl time.Duration) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), boltDirMode); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := bolt.Open(path, boltFileMode, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sessions bucket: %w", err)
	}

	return &BoltStore{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *BoltStore) Load(_ context.Context, sessionID string) (domain.ViewState, error) {
	var record *boltRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(sessionsBucket).Get([]byte(sessionID))
		if raw == nil {
			return nil
		}
		record = &boltRecord{}
		return json.Unmarshal(raw, record)
	})
	if err != nil {
		return domain.ViewState{}, fmt.Errorf("failed to read view state for session %s: %w", sessionID, err)
	}

	if record == nil || s.expired(record.Touched) {
		return domain.DefaultViewState(), nil
	}
	return record.State.Normalize(), nil
}

func (s *BoltStore) Save(_ context.Context, sessionID string, vs domain.ViewState) error {
	payload, err := json.Marshal(boltRecord{State: vs, Touched: s.now()})
	if err != nil {
		return fmt.Errorf("failed to encode view state: %w", err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(sessionID), payload)
	})
	if err != nil {
		return fmt.Errorf("failed to write view state for session %s: %w", sessionID, err)
	}
	return nil
}

// Update reads, transforms and writes the session's state inside one bbolt
// write transaction.
func (s *BoltStore) Update(_ context.Context, sessionID string, fn UpdateFunc) (domain.ViewState, error) {
	var next domain.ViewState
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)
		key := []byte(sessionID)

		current := domain.DefaultViewState()
		if raw := b.Get(key); raw != nil {
			var record boltRecord
			if json.Unmarshal(raw, &record) == nil && !s.expired(record.Touched) {
				current = record.State.Normalize()
			}
		}

		next = fn(current)
		payload, err := json.Marshal(boltRecord{State: next, Touched: s.now()})
		if err != nil {
			return fmt.Errorf("failed to encode view state: %w", err)
		}
		return b.Put(key, payload)
	})
	if err != nil {
		return domain.ViewState{}, fmt.Errorf("failed to update view state for session %s: %w", sessionID, err)
	}
	return next, nil
}

// Prune deletes expired sessions and reports how many were removed.
func (s *BoltStore) Prune() int {
	if s.ttl <= 0 {
		return 0
	}

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionsBucket)

		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var record boltRecord
			if err := json.Unmarshal(v, &record); err != nil || s.expired(record.Touched) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0
	}
	return removed
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) expired(touched time.Time) bool {
	return s.ttl > 0 && s.now().Sub(touched) > s.ttl
}
