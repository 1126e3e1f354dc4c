// Package postgres provides a PostgreSQL-backed event storage implementation.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/louisbranch/eventline/internal/services/event/storage"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS events (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name TEXT NOT NULL,
    occurred_at TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store persists events in PostgreSQL. Identity columns never hand out a
// value twice, so ids stay unique even if rows are removed out of band.
type Store struct {
	db *sql.DB
}

// New wraps an existing database handle. The schema is not touched.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL and ensures the events table exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres db: %w", err)
	}
	store := New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the events table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure events schema: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return storage.Unavailable("ping postgres db", s.db.PingContext(ctx))
}

// Create inserts one event and returns it with the allocated id.
func (s *Store) Create(ctx context.Context, name string, timestamp time.Time) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	if s == nil || s.db == nil {
		return storage.Event{}, fmt.Errorf("storage is not configured")
	}

	event := storage.Event{Name: name, Timestamp: timestamp.UTC()}
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO events (name, occurred_at) VALUES ($1, $2) RETURNING id",
		event.Name, storage.FormatTimestamp(event.Timestamp),
	).Scan(&event.ID)
	if err != nil {
		return storage.Event{}, storage.Unavailable("create event", err)
	}
	return event, nil
}

// Get returns one event by id.
func (s *Store) Get(ctx context.Context, id int64) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	if s == nil || s.db == nil {
		return storage.Event{}, fmt.Errorf("storage is not configured")
	}

	var event storage.Event
	var occurredAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, occurred_at FROM events WHERE id = $1",
		id,
	).Scan(&event.ID, &event.Name, &occurredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Event{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Event{}, storage.Unavailable("get event", err)
	}
	event.Timestamp, err = storage.ParseTimestamp(occurredAt)
	if err != nil {
		return storage.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return event, nil
}

// Count returns the number of stored events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, storage.Unavailable("count events", err)
	}
	return count, nil
}

var _ storage.Store = (*Store)(nil)
