package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/eventline/internal/services/event/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetEventRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ts := time.Date(2025, time.February, 15, 20, 55, 9, 0, time.UTC)

	created, err := store.Create(context.Background(), "eventNew", ts)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("id = %d, want 1", created.ID)
	}

	got, err := store.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got.Name != "eventNew" {
		t.Fatalf("name = %q, want eventNew", got.Name)
	}
	if !got.Timestamp.Equal(ts) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, ts)
	}
}

func TestCreateKeepsSubsecondPrecision(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ts := time.Date(2025, time.February, 15, 20, 55, 9, 123456789, time.UTC)
	created, err := store.Create(context.Background(), "precise", ts)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	got, err := store.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if !got.Timestamp.Equal(ts) {
		t.Fatalf("timestamp = %v, want %v", got.Timestamp, ts)
	}
}

func TestGetMissingEventReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.Get(context.Background(), 42)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestIDsAreNotReusedAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "events.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := first.Create(context.Background(), "before", time.Now()); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() { _ = second.Close() })

	event, err := second.Create(context.Background(), "after", time.Now())
	if err != nil {
		t.Fatalf("create event after reopen: %v", err)
	}
	if event.ID != 3 {
		t.Fatalf("id = %d, want 3", event.ID)
	}
	count, err := second.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestConcurrentCreatesProduceDistinctIDs(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	const workers = 16

	var (
		mu   sync.Mutex
		seen = make(map[int64]bool, workers)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event, err := store.Create(context.Background(), "concurrent", time.Now())
			if err != nil {
				t.Errorf("create event: %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if seen[event.ID] {
				t.Errorf("duplicate id %d", event.ID)
			}
			seen[event.ID] = true
		}()
	}
	wg.Wait()

	if len(seen) != workers {
		t.Fatalf("distinct ids = %d, want %d", len(seen), workers)
	}
}

func TestClosedStoreReportsUnavailable(t *testing.T) {
	t.Parallel()

	store, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	if _, err := store.Create(context.Background(), "x", time.Now()); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("create err = %v, want %v", err, storage.ErrUnavailable)
	}
	if _, err := store.Get(context.Background(), 1); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("get err = %v, want %v", err, storage.ErrUnavailable)
	}
	if err := store.Ping(context.Background()); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("ping err = %v, want %v", err, storage.ErrUnavailable)
	}
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Create(ctx, "x", time.Now()); !errors.Is(err, context.Canceled) {
		t.Fatalf("create err = %v, want context.Canceled", err)
	}
	if _, err := store.Get(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("get err = %v, want context.Canceled", err)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
