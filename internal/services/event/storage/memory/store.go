// Package memory provides an in-process event storage implementation.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/eventline/internal/services/event/storage"
)

// Store keeps events in a map guarded by a single lock. Id allocation and
// insertion happen in the same critical section, so readers never observe a
// partially constructed event.
type Store struct {
	mu     sync.RWMutex
	lastID int64
	events map[int64]storage.Event
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{events: make(map[int64]storage.Event)}
}

// Create allocates the next id and stores the event.
func (s *Store) Create(ctx context.Context, name string, timestamp time.Time) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	event := storage.Event{
		ID:        s.lastID,
		Name:      name,
		Timestamp: timestamp.UTC(),
	}
	s.events[event.ID] = event
	return event, nil
}

// Get returns one event by id.
func (s *Store) Get(ctx context.Context, id int64) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}

	s.mu.RLock()
	event, ok := s.events[id]
	s.mu.RUnlock()
	if !ok {
		return storage.Event{}, storage.ErrNotFound
	}
	return event, nil
}

// Count returns the number of stored events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.events)), nil
}

// Ping always succeeds for the in-memory store.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

var _ storage.Store = (*Store)(nil)
