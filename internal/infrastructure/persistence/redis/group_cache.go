package redis

import (
	"context"
	"errors"
	"time"

	"github.com/college-hub/college-schedule/internal/domain/schedule"
	"github.com/college-hub/college-schedule/pkg/circuitbreaker"
	"github.com/college-hub/college-schedule/pkg/logger"
)

// KV is the part of Cache the group directory cache relies on.
type KV interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// GroupDirectoryCache decorates a schedule.Store with a read-through cache
// for group lookups and the group listing. Schedule rows always come from
// the underlying store. The underlying session is opened lazily, so a fully
// cached request never takes a database connection. While Redis keeps
// failing the breaker is open and the cache is bypassed entirely.
type GroupDirectoryCache struct {
	store   schedule.Store
	kv      KV
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
	log     *logger.Logger
}

// NewGroupDirectoryCache creates a new GroupDirectoryCache.
func NewGroupDirectoryCache(store schedule.Store, kv KV, ttl time.Duration, log *logger.Logger) *GroupDirectoryCache {
	log = log.With(logger.Component("group_cache"))

	breaker := circuitbreaker.CacheBreaker(
		func(err error) bool { return !errors.Is(err, ErrCacheMiss) },
		func(name string, from, to circuitbreaker.State) {
			log.Warn("group cache breaker state changed",
				logger.String("breaker", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
		},
	)

	return &GroupDirectoryCache{
		store:   store,
		kv:      kv,
		ttl:     ttl,
		breaker: breaker,
		log:     log,
	}
}

// BreakerState returns the state of the cache circuit breaker.
func (c *GroupDirectoryCache) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// Open implements schedule.Store.
func (c *GroupDirectoryCache) Open(ctx context.Context) (schedule.Session, error) {
	return &cachedSession{cache: c}, nil
}

var _ schedule.Store = (*GroupDirectoryCache)(nil)

type cachedSession struct {
	cache *GroupDirectoryCache
	inner schedule.Session
}

// session opens the underlying session on first use.
func (s *cachedSession) session(ctx context.Context) (schedule.Session, error) {
	if s.inner != nil {
		return s.inner, nil
	}
	inner, err := s.cache.store.Open(ctx)
	if err != nil {
		return nil, err
	}
	s.inner = inner
	return inner, nil
}

func (s *cachedSession) Release() {
	if s.inner != nil {
		s.inner.Release()
	}
}

func (s *cachedSession) FindGroupByName(ctx context.Context, name string) (*schedule.StudentGroup, error) {
	key := GroupKey(name)

	var cached schedule.StudentGroup
	if s.cache.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	inner, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	group, err := inner.FindGroupByName(ctx, name)
	if err != nil {
		return nil, err
	}

	s.cache.remember(ctx, key, group)
	return group, nil
}

func (s *cachedSession) LoadEntries(ctx context.Context, groupID schedule.GroupID, r schedule.DateRange) ([]schedule.ScheduleEntry, error) {
	inner, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	return inner.LoadEntries(ctx, groupID, r)
}

func (s *cachedSession) ListGroupsWithSpecialty(ctx context.Context) ([]schedule.GroupSummary, error) {
	key := GroupListKey()

	var cached []schedule.GroupSummary
	if s.cache.lookup(ctx, key, &cached) {
		return cached, nil
	}

	inner, err := s.session(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := inner.ListGroupsWithSpecialty(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.remember(ctx, key, groups)
	return groups, nil
}

// lookup reports a cache hit. Backend failures are logged and treated as a miss.
func (c *GroupDirectoryCache) lookup(ctx context.Context, key string, dest interface{}) bool {
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.kv.Get(ctx, key, dest)
	})
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrCacheMiss), circuitbreaker.IsRejection(err):
		return false
	default:
		c.log.Warn("group cache read failed", logger.String("key", key), logger.Err(err))
		return false
	}
}

func (c *GroupDirectoryCache) remember(ctx context.Context, key string, value interface{}) {
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.kv.Set(ctx, key, value, c.ttl)
	})
	if err != nil && !circuitbreaker.IsRejection(err) {
		c.log.Warn("group cache write failed", logger.String("key", key), logger.Err(err))
	}
}
