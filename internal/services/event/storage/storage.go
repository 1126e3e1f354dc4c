// Package storage defines persistence contracts for event service state.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound indicates a requested event record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable indicates the backing storage could not be read or written.
	ErrUnavailable = errors.New("storage unavailable")
)

// Driver names accepted by the server configuration.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// TimestampLayout is the text layout used when persisting event timestamps.
const TimestampLayout = time.RFC3339Nano

// Event stores one immutable event record.
type Event struct {
	ID        int64
	Name      string
	Timestamp time.Time
}

// EventStore persists events and allocates their identifiers.
//
// Create assigns ids that are unique, positive and strictly increasing in
// allocation order. Get returns ErrNotFound for ids that were never stored.
type EventStore interface {
	Create(ctx context.Context, name string, timestamp time.Time) (Event, error)
	Get(ctx context.Context, id int64) (Event, error)
	Count(ctx context.Context) (int64, error)
}

// Store is an EventStore with lifecycle and readiness hooks.
type Store interface {
	EventStore
	Ping(ctx context.Context) error
	Close() error
}

// Unavailable wraps a backend failure so callers can match ErrUnavailable
// while keeping the cause. Context errors are returned as-is.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// FormatTimestamp renders a timestamp in the persisted UTC layout.
func FormatTimestamp(value time.Time) string {
	return value.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp back into UTC.
func ParseTimestamp(value string) (time.Time, error) {
	parsed, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed.UTC(), nil
}
