// Package redis provides a Redis-backed event storage implementation.
//
// Keys are laid out under a configurable prefix:
//
//	<prefix>:next_id      id counter
//	<prefix>:event:<id>   hash with name and timestamp fields
//	<prefix>:ids          sorted set of stored ids
//
// The create script derives event keys at run time, so every key must live
// on one node. The store therefore takes a single-node client.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/eventline/internal/services/event/storage"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces keys when no prefix is configured.
const DefaultPrefix = "eventline"

// createScript allocates the id and writes the record in one atomic step so
// a reader never observes an allocated id without its fields.
var createScript = goredis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('HSET', ARGV[1] .. id, 'name', ARGV[2], 'timestamp', ARGV[3])
redis.call('ZADD', KEYS[2], id, id)
return id
`)

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Store persists events in Redis.
type Store struct {
	client *goredis.Client
	prefix string
}

// New wraps an existing client.
func New(client *goredis.Client, prefix string) *Store {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Open connects to Redis and verifies the server responds.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Addr) == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, opts.Prefix), nil
}

func (s *Store) counterKey() string { return s.prefix + ":next_id" }
func (s *Store) idsKey() string     { return s.prefix + ":ids" }
func (s *Store) eventKeyPrefix() string {
	return s.prefix + ":event:"
}

// Close closes the client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Ping verifies the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("storage is not configured")
	}
	return storage.Unavailable("ping redis", s.client.Ping(ctx).Err())
}

// Create allocates an id and stores the event.
func (s *Store) Create(ctx context.Context, name string, timestamp time.Time) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	if s == nil || s.client == nil {
		return storage.Event{}, fmt.Errorf("storage is not configured")
	}

	event := storage.Event{Name: name, Timestamp: timestamp.UTC()}
	id, err := createScript.Run(ctx, s.client,
		[]string{s.counterKey(), s.idsKey()},
		s.eventKeyPrefix(), event.Name, storage.FormatTimestamp(event.Timestamp),
	).Int64()
	if err != nil {
		return storage.Event{}, storage.Unavailable("create event", err)
	}
	event.ID = id
	return event, nil
}

// Get returns one event by id.
func (s *Store) Get(ctx context.Context, id int64) (storage.Event, error) {
	if err := ctx.Err(); err != nil {
		return storage.Event{}, err
	}
	if s == nil || s.client == nil {
		return storage.Event{}, fmt.Errorf("storage is not configured")
	}

	fields, err := s.client.HGetAll(ctx, s.eventKeyPrefix()+strconv.FormatInt(id, 10)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return storage.Event{}, storage.ErrNotFound
		}
		return storage.Event{}, storage.Unavailable("get event", err)
	}
	if len(fields) == 0 {
		return storage.Event{}, storage.ErrNotFound
	}
	timestamp, err := storage.ParseTimestamp(fields["timestamp"])
	if err != nil {
		return storage.Event{}, fmt.Errorf("get event %d: %w", id, err)
	}
	return storage.Event{ID: id, Name: fields["name"], Timestamp: timestamp}, nil
}

// Count returns the number of stored events.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.client == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	count, err := s.client.ZCard(ctx, s.idsKey()).Result()
	if err != nil {
		return 0, storage.Unavailable("count events", err)
	}
	return count, nil
}

var _ storage.Store = (*Store)(nil)
