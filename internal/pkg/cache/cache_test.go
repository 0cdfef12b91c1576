package cache_test

import (
	"testing"
	"time"

	"marketplace/internal/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time {
	return f.current
}

func (f *fakeClock) advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func newTestCache(t *testing.T) (*cache.Cache[int64], *fakeClock) {
	t.Helper()
	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return cache.NewWithClock[int64](clock.now), clock
}

func TestCache_GetAfterSet(t *testing.T) {
	t.Run("returns value before ttl elapses", func(t *testing.T) {
		c, clock := newTestCache(t)
		c.Set("unread:seller:1", 7, 10*time.Second)

		clock.advance(9 * time.Second)

		v, ok := c.Get("unread:seller:1")
		require.True(t, ok)
		assert.Equal(t, int64(7), v)
	})

	t.Run("misses after ttl elapses", func(t *testing.T) {
		c, clock := newTestCache(t)
		c.Set("unread:seller:1", 7, 10*time.Second)

		clock.advance(10 * time.Second)

		_, ok := c.Get("unread:seller:1")
		assert.False(t, ok)
	})

	t.Run("expired entry is evicted on access", func(t *testing.T) {
		c, clock := newTestCache(t)
		c.Set("k", 1, time.Second)
		clock.advance(2 * time.Second)

		c.Get("k")

		assert.Equal(t, 0, c.Len())
	})

	t.Run("misses for unknown key", func(t *testing.T) {
		c, _ := newTestCache(t)

		v, ok := c.Get("never-set")
		assert.False(t, ok)
		assert.Zero(t, v)
	})
}

func TestCache_SetOverwrites(t *testing.T) {
	c, clock := newTestCache(t)
	c.Set("k", 1, time.Second)
	c.Set("k", 2, time.Minute)

	clock.advance(30 * time.Second)

	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestCache_Delete(t *testing.T) {
	t.Run("delete always produces a subsequent miss", func(t *testing.T) {
		c, _ := newTestCache(t)
		c.Set("k", 42, time.Hour)

		c.Delete("k")

		_, ok := c.Get("k")
		assert.False(t, ok)
	})

	t.Run("deleting an absent key is a no-op", func(t *testing.T) {
		c, _ := newTestCache(t)
		c.Delete("absent")
		assert.Equal(t, 0, c.Len())
	})
}

func TestCache_Sweep(t *testing.T) {
	c, clock := newTestCache(t)
	c.Set("expired-1", 1, time.Second)
	c.Set("expired-2", 2, 2*time.Second)
	c.Set("alive", 3, time.Hour)

	clock.advance(5 * time.Second)

	evicted := c.Sweep()

	assert.Equal(t, 2, evicted)
	assert.Equal(t, 1, c.Len())

	v, ok := c.Get("alive")
	require.True(t, ok)
	assert.Equal(t, int64(3), v)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := cache.New[int64]()
	done := make(chan struct{})

	go func() {
		for i := range 1000 {
			c.Set("shared", int64(i), time.Minute)
		}
		close(done)
	}()

	for range 1000 {
		c.Get("shared")
		c.Delete("other")
	}
	<-done
}
