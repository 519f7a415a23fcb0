package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetGet(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("k", "v")

	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("absent")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Keys)
}

func TestExpiry(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	c.Set("k", 42)

	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after TTL")
	assert.Equal(t, 0, c.Stats().Keys, "expired entry dropped on access")
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New[int](0)
	c.Set("k", 1)
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get("k")
	assert.True(t, ok)
}

func TestClearAndDelete(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Keys)
}
