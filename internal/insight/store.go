package insight

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"market-pulse/internal/cache"
	"market-pulse/internal/domain"

	"github.com/redis/go-redis/v9"
)

const defaultL1TTL = time.Minute

// Store keeps generated insights. Implementations swallow backend errors;
// a failed read is a miss.
type Store interface {
	Get(ctx context.Context, key string) (domain.Insight, bool)
	Set(ctx context.Context, key string, value domain.Insight, ttl time.Duration)
}

// MemoryStore is the in-process store.
type MemoryStore struct {
	entries *cache.TTL[domain.Insight]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: cache.NewTTL[domain.Insight]()}
}

func (m *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	m.entries.WithClock(now)
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (domain.Insight, bool) {
	return m.entries.Get(key)
}

func (m *MemoryStore) Set(_ context.Context, key string, value domain.Insight, ttl time.Duration) {
	m.entries.Set(key, value, ttl)
}

func (m *MemoryStore) Purge() int { return m.entries.Purge() }

func (m *MemoryStore) Len() int { return m.entries.Len() }

// RedisClient is the subset of *redis.Client the shared store uses.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore layers a short-lived local copy over a shared Redis store so
// every replica serves the same insight for a given day.
type RedisStore struct {
	l1    *MemoryStore
	redis RedisClient
	l1TTL time.Duration
}

func NewRedisStore(client RedisClient, l1 *MemoryStore) *RedisStore {
	if l1 == nil {
		l1 = NewMemoryStore()
	}
	return &RedisStore{l1: l1, redis: client, l1TTL: defaultL1TTL}
}

func (r *RedisStore) Get(ctx context.Context, key string) (domain.Insight, bool) {
	if v, ok := r.l1.Get(ctx, key); ok {
		return v, true
	}

	data, err := r.redis.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Insight{}, false
	}
	if err != nil {
		log.Printf("redis insight read error: %v", err)
		return domain.Insight{}, false
	}

	var v domain.Insight
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("redis insight decode error for %s: %v", key, err)
		return domain.Insight{}, false
	}
	r.l1.Set(ctx, key, v, r.l1TTL)
	return v, true
}

func (r *RedisStore) Set(ctx context.Context, key string, value domain.Insight, ttl time.Duration) {
	r.l1.Set(ctx, key, value, min(ttl, r.l1TTL))

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("redis insight encode error: %v", err)
		return
	}
	if err := r.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("redis insight write error: %v", err)
	}
}

func (r *RedisStore) Purge() int { return r.l1.Purge() }
