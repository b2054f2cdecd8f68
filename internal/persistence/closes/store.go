package closespersist

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/core/collection"
	gocache "github.com/zeromicro/go-zero/core/stores/cache"

	"fiveday-api/pkg/series"
)

// Store holds whole series values under a key. Get returns nil, nil on a miss.
type Store interface {
	Get(ctx context.Context, key string) (*series.Result, error)
	Put(ctx context.Context, key string, res *series.Result, ttl time.Duration) error
}

// RedisStore keeps series as JSON in a go-zero cache cluster.
type RedisStore struct {
	cache gocache.Cache
}

func NewRedisStore(c gocache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*series.Result, error) {
	var res series.Result
	if err := s.cache.GetCtx(ctx, key, &res); err != nil {
		if s.cache.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, res *series.Result, ttl time.Duration) error {
	return s.cache.SetWithExpireCtx(ctx, key, res, ttl)
}

// MemoryStore is an in-process Store for runs without Redis.
type MemoryStore struct {
	cache *collection.Cache
}

// NewMemoryStore builds a store whose entries expire after ttl unless Put
// passes its own.
func NewMemoryStore(ttl time.Duration) (*MemoryStore, error) {
	c, err := collection.NewCache(ttl, collection.WithName("closes"))
	if err != nil {
		return nil, fmt.Errorf("closespersist: memory store: %w", err)
	}
	return &MemoryStore{cache: c}, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (*series.Result, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}
	res, ok := v.(*series.Result)
	if !ok {
		return nil, fmt.Errorf("closespersist: unexpected value %T at %s", v, key)
	}
	return res, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, res *series.Result, ttl time.Duration) error {
	s.cache.SetWithExpire(key, res, ttl)
	return nil
}
