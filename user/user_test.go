package user

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/kbukum/authgate/database"
	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/redis"
)

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := database.Open(context.Background(), database.Config{
		Driver:     database.DriverSQLite,
		DSN:        filepath.Join(t.TempDir(), "users.db"),
		MaxRetries: 1,
	}, logger.NewNop())
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewGormStore(db)
	if err := store.Migrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestGormStoreCreateAndFind(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, &Record{Username: "alice", Email: "alice@example.com", HashedPassword: "h"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected an assigned ID")
	}

	got, err := store.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername() error: %v", err)
	}
	if got.Email != "alice@example.com" || got.HashedPassword != "h" {
		t.Errorf("unexpected record: %+v", got)
	}
	if pub := got.Public(); pub.Username != "alice" || pub.Email != "alice@example.com" {
		t.Errorf("unexpected public projection: %+v", pub)
	}
}

func TestGormStoreNotFound(t *testing.T) {
	store := newGormStore(t)
	_, err := store.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGormStoreDuplicate(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, &Record{Username: "bob", Email: "a@example.com", HashedPassword: "h"}); err != nil {
		t.Fatalf("first Create() error: %v", err)
	}
	_, err := store.Create(ctx, &Record{Username: "bob", Email: "b@example.com", HashedPassword: "h"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestGormStoreConcurrentRegistration(t *testing.T) {
	store := newGormStore(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, &Record{Username: "carol", Email: "c@example.com", HashedPassword: "h"})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		}
	}
	if ok != 1 {
		t.Errorf("expected exactly one successful registration, got %d", ok)
	}
}

type countingStore struct {
	Store
	finds int
}

func (c *countingStore) FindByUsername(ctx context.Context, username string) (*Record, error) {
	c.finds++
	return c.Store.FindByUsername(ctx, username)
}

func newCachedStore(t *testing.T, opts ...CacheOption) (*CachedStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client, err := redis.New(redis.Config{Enabled: true, Addr: mini.Addr(), DialTimeout: "200ms"}, logger.NewNop())
	if err != nil {
		t.Fatalf("redis.New: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	inner := &countingStore{Store: newGormStore(t)}
	return NewCachedStore(inner, client, "test", time.Minute, logger.NewNop(), opts...), inner, mini
}

func TestCachedStoreReadThrough(t *testing.T) {
	cached, inner, mini := newCachedStore(t)
	ctx := context.Background()

	if _, err := cached.Create(ctx, &Record{Username: "dave", Email: "d@example.com", HashedPassword: "h"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	for i := 0; i < 3; i++ {
		rec, err := cached.FindByUsername(ctx, "dave")
		if err != nil {
			t.Fatalf("FindByUsername() error: %v", err)
		}
		if rec.HashedPassword != "h" {
			t.Errorf("cached record lost the hash: %+v", rec)
		}
	}
	if inner.finds != 1 {
		t.Errorf("expected one store lookup, got %d", inner.finds)
	}
	if !mini.Exists("test:user:dave") {
		t.Error("expected cache entry")
	}
	if ttl := mini.TTL("test:user:dave"); ttl != time.Minute {
		t.Errorf("expected 1m TTL, got %s", ttl)
	}
}

func TestCachedStoreDoesNotCacheMisses(t *testing.T) {
	cached, inner, mini := newCachedStore(t)
	ctx := context.Background()

	if _, err := cached.FindByUsername(ctx, "erin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if mini.Exists("test:user:erin") {
		t.Error("misses must not be cached")
	}

	if _, err := cached.Create(ctx, &Record{Username: "erin", Email: "e@example.com", HashedPassword: "h"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := cached.FindByUsername(ctx, "erin"); err != nil {
		t.Errorf("fresh registration should be visible, got %v", err)
	}
	if inner.finds != 2 {
		t.Errorf("expected two store lookups, got %d", inner.finds)
	}
}

func TestCachedStoreFallsBackWhenRedisDown(t *testing.T) {
	cached, inner, mini := newCachedStore(t)
	ctx := context.Background()
	mini.Close()

	if _, err := cached.Create(ctx, &Record{Username: "frank", Email: "f@example.com", HashedPassword: "h"}); err != nil {
		t.Fatalf("Create() should succeed without cache, got %v", err)
	}
	rec, err := cached.FindByUsername(ctx, "frank")
	if err != nil {
		t.Fatalf("FindByUsername() should fall back to the store, got %v", err)
	}
	if rec.Username != "frank" || inner.finds != 1 {
		t.Errorf("unexpected fallback result: %+v finds=%d", rec, inner.finds)
	}
}

func TestCachedStorePropagatesDuplicate(t *testing.T) {
	cached, _, _ := newCachedStore(t)
	ctx := context.Background()
	rec := &Record{Username: "gina", Email: "g@example.com", HashedPassword: "h"}
	if _, err := cached.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := cached.Create(ctx, rec); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestCachedStoreBreakerSkipsCacheAfterFailures(t *testing.T) {
	cached, inner, mini := newCachedStore(t, WithBreaker(2, time.Hour))
	ctx := context.Background()
	if _, err := cached.Create(ctx, &Record{Username: "hank", Email: "h@example.com", HashedPassword: "h"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	mini.Close()

	// Load fails, save fails: two failures open the breaker.
	if _, err := cached.FindByUsername(ctx, "hank"); err != nil {
		t.Fatalf("FindByUsername() error: %v", err)
	}
	if err := mini.Restart(); err != nil {
		t.Fatalf("restart miniredis: %v", err)
	}

	// Redis is back but the breaker is still open, so nothing is written.
	if _, err := cached.FindByUsername(ctx, "hank"); err != nil {
		t.Fatalf("FindByUsername() error: %v", err)
	}
	if mini.Exists("test:user:hank") {
		t.Error("expected the open breaker to skip the cache")
	}
	if inner.finds != 2 {
		t.Errorf("expected both lookups to reach the store, got %d", inner.finds)
	}
}
