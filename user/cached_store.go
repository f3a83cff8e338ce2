package user

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/authgate/logger"
	"github.com/kbukum/authgate/redis"
	"github.com/kbukum/authgate/resilience"
)

// CachedStore caches successful username lookups in Redis. Misses are never
// cached, so a new registration is visible to the next lookup. Cache errors
// fall back to the wrapped store; after repeated errors a circuit breaker
// skips the cache until a probe succeeds.
type CachedStore struct {
	next    Store
	cache   *redis.TypedStore[Record]
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
	log     *logger.Logger
}

var _ Store = (*CachedStore)(nil)

// CacheOption configures a CachedStore.
type CacheOption func(*resilience.CircuitBreakerConfig)

// WithBreaker overrides the failure threshold and cool-down of the cache breaker.
func WithBreaker(maxFailures int, coolDown time.Duration) CacheOption {
	return func(c *resilience.CircuitBreakerConfig) {
		c.MaxFailures = maxFailures
		c.Timeout = coolDown
	}
}

// NewCachedStore wraps next with a cache under keyPrefix.
func NewCachedStore(next Store, client *redis.Client, keyPrefix string, ttl time.Duration, log *logger.Logger, opts ...CacheOption) *CachedStore {
	log = log.WithComponent("user-cache")

	bc := resilience.DefaultCircuitBreakerConfig("user-cache")
	bc.OnStateChange = func(name string, from, to resilience.State) {
		log.Warn("cache circuit state changed", logger.Fields("breaker", name, "from", from.String(), "to", to.String()))
	}
	for _, opt := range opts {
		opt(&bc)
	}

	return &CachedStore{
		next:    next,
		cache:   redis.NewTypedStore[Record](client, keyPrefix+":user"),
		ttl:     ttl,
		breaker: resilience.NewCircuitBreaker(bc),
		log:     log,
	}
}

// FindByUsername implements Store.
func (s *CachedStore) FindByUsername(ctx context.Context, username string) (*Record, error) {
	var cached *Record
	err := s.breaker.Execute(func() error {
		var err error
		cached, err = s.cache.Load(ctx, username)
		return err
	})
	s.logCacheError(ctx, "cache_load", err)
	if cached != nil {
		return cached, nil
	}

	rec, err := s.next.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	err = s.breaker.Execute(func() error {
		return s.cache.Save(ctx, username, rec, s.ttl)
	})
	s.logCacheError(ctx, "cache_save", err)
	return rec, nil
}

// Create implements Store and drops any stale cache entry for the name.
func (s *CachedStore) Create(ctx context.Context, rec *Record) (*Record, error) {
	created, err := s.next.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	err = s.breaker.Execute(func() error {
		return s.cache.Delete(ctx, created.Username)
	})
	s.logCacheError(ctx, "cache_delete", err)
	return created, nil
}

func (s *CachedStore) logCacheError(ctx context.Context, op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, resilience.ErrCircuitOpen):
		s.log.WithContext(ctx).Debug("user cache skipped", logger.Fields(logger.FieldOperation, op))
	default:
		s.log.WithContext(ctx).Warn("user cache operation failed", logger.ErrorFields(op, err))
	}
}
