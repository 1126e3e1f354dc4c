package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/eventline/internal/platform/timeouts"
	"github.com/louisbranch/eventline/internal/services/event/storage"
	"github.com/louisbranch/eventline/internal/services/event/storage/memory"
	"github.com/louisbranch/eventline/internal/services/event/storage/postgres"
	"github.com/louisbranch/eventline/internal/services/event/storage/redis"
	"github.com/louisbranch/eventline/internal/services/event/storage/sqlite"
)

// StoreConfig selects and configures the event store backend.
type StoreConfig struct {
	Driver        string
	SQLitePath    string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

func openStore(ctx context.Context, cfg StoreConfig) (storage.Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = storage.DriverMemory
	}

	openCtx, cancel := context.WithTimeout(ctx, timeouts.StoreOpen)
	defer cancel()

	switch driver {
	case storage.DriverMemory:
		return memory.New(), nil
	case storage.DriverSQLite:
		path := cfg.SQLitePath
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open event sqlite store: %w", err)
		}
		return store, nil
	case storage.DriverPostgres:
		store, err := postgres.Open(openCtx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open event postgres store: %w", err)
		}
		return store, nil
	case storage.DriverRedis:
		store, err := redis.Open(openCtx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("open event redis store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
