package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("industry", "Backend Engineer", "jd")
	assert.Equal(t, a, Key("industry", "Backend Engineer", "jd"))
	assert.NotEqual(t, a, Key("industry", "Backend Engineer", "other"))
	assert.Len(t, a, len(keyPrefix)+24)
}

func TestGetSetJSONMemoryOnly(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, Options{TTL: time.Minute})

	type payload struct {
		Tools []string `json:"tools"`
	}
	_, ok := GetJSON[payload](ctx, c, "k")
	assert.False(t, ok)

	SetJSON(ctx, c, "k", payload{Tools: []string{"docker"}})
	got, ok := GetJSON[payload](ctx, c, "k")
	require.True(t, ok)
	assert.Equal(t, []string{"docker"}, got.Tools)

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	c := New(ctx, Options{TTL: time.Minute})
	c.now = func() time.Time { return now }

	c.Set(ctx, "k", []byte("v"))
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestEvictsOldest(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	c := New(ctx, Options{TTL: time.Hour, MaxEntries: 3})
	c.now = func() time.Time { return now }

	for i := 0; i < 4; i++ {
		c.Set(ctx, fmt.Sprintf("k%d", i), []byte("v"))
		now = now.Add(time.Second)
	}

	_, ok := c.Get(ctx, "k0")
	assert.False(t, ok, "oldest entry should be evicted")
	_, ok = c.Get(ctx, "k3")
	assert.True(t, ok)
}

func TestInvalidRedisURLDisablesL2(t *testing.T) {
	c := New(context.Background(), Options{RedisURL: "not a url"})
	assert.Nil(t, c.rdb)
	assert.NoError(t, c.Close())
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Tiered
	_, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
	c.Set(context.Background(), "k", []byte("v"))
	assert.NoError(t, c.Close())
}
