// Package cache is a two-tier cache: an in-process L1 and an optional Redis
// L2 that survives restarts.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"resume-analysis/internal/shared/telemetry"
)

const (
	defaultTTL        = 24 * time.Hour
	defaultMaxEntries = 1000
	keyPrefix         = "ra:"
)

// Options configures a Tiered cache. An empty RedisURL disables L2.
type Options struct {
	RedisURL   string
	TTL        time.Duration
	MaxEntries int
}

// Tiered caches byte values in memory and, when configured, in Redis.
type Tiered struct {
	l1         sync.Map // key -> *entry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// New builds the cache. An unreachable or invalid Redis leaves L2 disabled.
func New(ctx context.Context, opts Options) *Tiered {
	c := &Tiered{
		ttl:        opts.TTL,
		maxEntries: opts.MaxEntries,
		now:        time.Now,
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}
	if c.maxEntries <= 0 {
		c.maxEntries = defaultMaxEntries
	}

	if url := strings.TrimSpace(opts.RedisURL); url != "" {
		ropts, err := redis.ParseURL(url)
		if err != nil {
			telemetry.Warn("cache.redis_invalid", map[string]any{"error": err.Error()})
		} else {
			rdb := redis.NewClient(ropts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			defer cancel()
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				telemetry.Warn("cache.redis_unreachable", map[string]any{"error": err.Error()})
				_ = rdb.Close()
			} else {
				c.rdb = rdb
			}
		}
	}

	telemetry.Info("cache.init", map[string]any{
		"ttl_seconds": int(c.ttl.Seconds()),
		"redis":       c.rdb != nil,
		"max_entries": c.maxEntries,
	})
	return c
}

// Key builds a deterministic key from parts.
func Key(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s%x", keyPrefix, sum[:12])
}

// Get tries L1, then L2. An L2 hit repopulates L1.
func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	if val, ok := c.l1.Load(key); ok {
		e := val.(*entry)
		if c.now().Before(e.expiresAt) {
			c.hits.Add(1)
			return e.data, true
		}
		c.l1.Delete(key)
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			c.hits.Add(1)
			c.store(key, data)
			return data, true
		}
		if err != redis.Nil {
			telemetry.Debug("cache.l2_get_failed", map[string]any{"error": err.Error()})
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stores data in both tiers.
func (c *Tiered) Set(ctx context.Context, key string, data []byte) {
	if c == nil {
		return
	}
	c.evictIfNeeded()
	c.store(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			telemetry.Debug("cache.l2_set_failed", map[string]any{"error": err.Error()})
		}
	}
}

// Stats returns hit and miss counters.
func (c *Tiered) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// Close releases the Redis connection, if any.
func (c *Tiered) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *Tiered) store(key string, data []byte) {
	c.l1.Store(key, &entry{data: data, expiresAt: c.now().Add(c.ttl)})
}

// evictIfNeeded drops expired entries, then the oldest, until L1 has room.
func (c *Tiered) evictIfNeeded() {
	count := 0
	c.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count < c.maxEntries {
		return
	}

	now := c.now()
	c.l1.Range(func(key, val any) bool {
		if e := val.(*entry); now.After(e.expiresAt) {
			c.l1.Delete(key)
			count--
		}
		return true
	})

	for count >= c.maxEntries {
		var oldestKey any
		var oldestAt time.Time
		c.l1.Range(func(key, val any) bool {
			e := val.(*entry)
			if oldestKey == nil || e.expiresAt.Before(oldestAt) {
				oldestKey, oldestAt = key, e.expiresAt
			}
			return true
		})
		if oldestKey == nil {
			return
		}
		c.l1.Delete(oldestKey)
		count--
	}
}

// GetJSON decodes a cached value. Decode errors count as a miss.
func GetJSON[T any](ctx context.Context, c *Tiered, key string) (T, bool) {
	var out T
	data, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		var zero T
		return zero, false
	}
	return out, true
}

// SetJSON encodes v and stores it.
func SetJSON[T any](ctx context.Context, c *Tiered, key string, v T) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, data)
}
