package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("key", "value")
	got, found := c.Get("key")
	assert.True(t, found)
	assert.Equal(t, "value", got)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(0)

	c.Set("key", "value")
	_, found := c.Get("key")
	assert.False(t, found)
}

func TestCacheFlush(t *testing.T) {
	c := NewCache(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Flush()

	_, found := c.Get("a")
	assert.False(t, found)
	_, found = c.Get("b")
	assert.False(t, found)
}
