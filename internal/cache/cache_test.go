package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache() *Cache {
	return &Cache{
		items: make(map[string]CacheItem),
		ttl:   time.Minute,
	}
}

func TestSetGet(t *testing.T) {
	c := newCache()

	c.Set("products:list", []string{"Widget"})
	value, found := c.GetValue("products:list")
	require.True(t, found)
	assert.Equal(t, []string{"Widget"}, value)

	_, found = c.GetValue("missing")
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	c := newCache()

	c.Set("short", "value", 10*time.Millisecond)
	_, found := c.GetValue("short")
	require.True(t, found)

	time.Sleep(20 * time.Millisecond)
	_, found = c.GetValue("short")
	assert.False(t, found)
}

func TestDelete(t *testing.T) {
	c := newCache()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")

	_, found := c.GetValue("a")
	assert.False(t, found)
	_, found = c.GetValue("b")
	assert.True(t, found)
}

func TestClearAndSize(t *testing.T) {
	c := newCache()

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, 2, c.Size())

	c.Clear()
	assert.Equal(t, 0, c.Size())
}
