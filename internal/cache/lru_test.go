package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_NewLRU(t *testing.T) {
	c := NewLRU[string, int](4)

	require.NotNil(t, c)
	assert.Equal(t, 4, c.Capacity())
	assert.Equal(t, 0, c.Len())
}

func TestLRU_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewLRU[string, int](0).Capacity())
	assert.Equal(t, DefaultCapacity, NewLRU[string, int](-3).Capacity())
}

func TestLRU_PutAndGet(t *testing.T) {
	c := NewLRU[string, any](2)
	c.Put("a", 1)
	c.Put("b", nil)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	// nil is a legitimate cached value ("tried and failed")
	got, ok = c.Get("b")
	require.True(t, ok)
	assert.Nil(t, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	// touch "a" so "b" becomes the eviction candidate
	_, _ = c.Get("a")
	c.Put("c", 3)

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
	assert.Equal(t, 2, c.Len())
}

func TestLRU_ContainsKeepsRecency(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	require.True(t, c.Contains("a"))
	c.Put("c", 3)

	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("b"))
}

func TestLRU_ResetThenReuse(t *testing.T) {
	c := NewLRU[string, int](1)
	c.Put("a", 1)
	c.Reset()
	c.Put("b", 2)

	got, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_PutOverwrites(t *testing.T) {
	c := NewLRU[string, int](2)
	c.Put("a", 1)
	c.Put("a", 5)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5, got)
	assert.Equal(t, 1, c.Len())
}

func TestLRU_Reset(t *testing.T) {
	c := NewLRU[string, int](3)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Reset()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains("a"))
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c := NewLRU[string, int](16)
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", id%20)
			c.Put(key, id)
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}

func TestSafeCounter(t *testing.T) {
	var counter SafeCounter
	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counter.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter.Value())

	counter.Set(7)
	assert.Equal(t, 7, counter.Value())
}
