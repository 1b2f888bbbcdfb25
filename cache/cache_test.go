package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bersihin/bersihin-api/cache"
)

func TestGetMissingKey(t *testing.T) {
	c := cache.New()

	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestSetAndGetWithinTTL(t *testing.T) {
	c := cache.New()
	c.Set("campaigns|guest|all", []string{"a", "b"}, time.Minute)

	v, ok := c.Get("campaigns|guest|all")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestGetAfterExpiry(t *testing.T) {
	c := cache.New()
	c.Set("k", 1, 10*time.Millisecond)

	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestInvalidateAll(t *testing.T) {
	c := cache.New()
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.InvalidateAll()

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	c := cache.New()
	c.Set("old", 1, 5*time.Millisecond)
	c.Set("fresh", 2, time.Minute)

	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("fresh")
	assert.True(t, ok)
}
