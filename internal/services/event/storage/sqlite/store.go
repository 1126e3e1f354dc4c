// Package sqlite provides a SQLite-backed event storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/eventline/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/eventline/internal/services/event/storage"
	"github.com/louisbranch/eventline/internal/services/event/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists events in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

// Open opens a SQLite event store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlitemigrate.Apply(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return storage.Unavailable("ping sqlite db", s.sqlDB.PingContext(ctx))
}

// Create inserts one event and returns it with the allocated id.
func (s *Store) Create(ctx context.Context, name string, timestamp time.Time) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Event{}, fmt.Errorf("storage is not configured")
	}

	event := storage.Event{Name: name, Timestamp: timestamp.UTC()}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`INSERT INTO events (name, occurred_at, created_at)
		 VALUES (?, ?, ?)
		 RETURNING id`,
		event.Name,
		storage.FormatTimestamp(event.Timestamp),
		s.clock().UTC().UnixMilli(),
	)
	if err := row.Scan(&event.ID); err != nil {
		return storage.Event{}, storage.Unavailable("create event", err)
	}
	return event, nil
}

// Get returns one event by id.
func (s *Store) Get(ctx context.Context, id int64) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Event{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, occurred_at
		   FROM events
		  WHERE id = ?`,
		id,
	)

	var event storage.Event
	var occurredAt string
	if err := row.Scan(&event.ID, &event.Name, &occurredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Event{}, storage.ErrNotFound
		}
		return storage.Event{}, storage.Unavailable("get event", err)
	}
	timestamp, err := storage.ParseTimestamp(occurredAt)
	if err != nil {
		return storage.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	event.Timestamp = timestamp
	return event, nil
}

// Count returns the number of stored events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, storage.Unavailable("count events", err)
	}
	return count, nil
}

var _ storage.Store = (*Store)(nil)
