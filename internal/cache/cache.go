package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"yatube/backend/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a TTL byte cache backed by Redis. When Redis is unavailable it
// falls back to an in-process store so the application keeps working.
type Cache struct {
	client *redis.Client
	mem    *memoryStore

	logger *zap.SugaredLogger
	meter  *metrics.Metrics
}

// New connects to Redis at addr. An empty addr or a failed ping selects the
// in-memory fallback.
func New(addr string, logger *zap.SugaredLogger, meter *metrics.Metrics) *Cache {
	if addr == "" {
		return &Cache{mem: newMemoryStore(), logger: logger, meter: meter}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if logger != nil {
			logger.Warnw("Redis unavailable; using in-memory cache", "error", err)
		}
		return &Cache{mem: newMemoryStore(), logger: logger, meter: meter}
	}

	return &Cache{client: client, logger: logger, meter: meter}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.client != nil {
		val, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				c.meter.RecordCacheMiss()
				return nil, ErrCacheMiss
			}
			if c.logger != nil {
				c.logger.Errorw("Cache get error", "key", key, "error", err)
			}
			return nil, fmt.Errorf("cache get error: %w", err)
		}
		c.meter.RecordCacheHit()
		return val, nil
	}

	data, ok := c.mem.get(key)
	if !ok {
		c.meter.RecordCacheMiss()
		return nil, ErrCacheMiss
	}
	c.meter.RecordCacheHit()
	return data, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.client != nil {
		if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
			if c.logger != nil {
				c.logger.Errorw("Cache set error", "key", key, "error", err)
			}
			return fmt.Errorf("cache set error: %w", err)
		}
		return nil
	}

	c.mem.set(key, value, ttl)
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if c.client != nil {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("cache delete error: %w", err)
		}
		return nil
	}

	c.mem.del(keys...)
	return nil
}

// IsInMemoryMode returns true if the cache is running without Redis.
func (c *Cache) IsInMemoryMode() bool {
	return c.client == nil
}

func (c *Cache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{entries: make(map[string]memoryEntry)}
}

func (s *memoryStore) get(key string) ([]byte, bool) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

func (s *memoryStore) set(key string, data []byte, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
}

func (s *memoryStore) del(keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}
