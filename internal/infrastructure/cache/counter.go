package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowCounter counts hits per key in fixed time windows
type WindowCounter interface {
	// Hit increments the key and returns the count in the current window
	// and the time until the window resets.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisWindowCounter shares counts between API instances
type RedisWindowCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisWindowCounter creates a counter storing keys under prefix
func NewRedisWindowCounter(client *redis.Client, prefix string) *RedisWindowCounter {
	return &RedisWindowCounter{client: client, prefix: prefix}
}

// Hit implements WindowCounter with INCR; the window starts at the first hit
func (c *RedisWindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	k := c.prefix + key
	count, err := c.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate counter: %w", err)
	}
	if count == 1 {
		if err := c.client.PExpire(ctx, k, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("rate counter: %w", err)
		}
		return count, window, nil
	}
	ttl, err := c.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate counter: %w", err)
	}
	if ttl < 0 {
		// lost expiry, e.g. a crash between INCR and PEXPIRE
		_ = c.client.PExpire(ctx, k, window).Err()
		ttl = window
	}
	return count, ttl, nil
}

var _ WindowCounter = (*RedisWindowCounter)(nil)

// MemoryWindowCounter is a single-process fallback
type MemoryWindowCounter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	now     func() time.Time
}

const sweepThreshold = 1024

type windowEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryWindowCounter creates an empty counter
func NewMemoryWindowCounter() *MemoryWindowCounter {
	return &MemoryWindowCounter{entries: make(map[string]*windowEntry), now: time.Now}
}

// Hit implements WindowCounter. Expired entries are swept once the map
// holds more than sweepThreshold keys.
func (c *MemoryWindowCounter) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if len(c.entries) > sweepThreshold {
		for k, e := range c.entries {
			if !now.Before(e.resetAt) {
				delete(c.entries, k)
			}
		}
	}
	e, ok := c.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &windowEntry{resetAt: now.Add(window)}
		c.entries[key] = e
	}
	e.count++
	return e.count, e.resetAt.Sub(now), nil
}

var _ WindowCounter = (*MemoryWindowCounter)(nil)
