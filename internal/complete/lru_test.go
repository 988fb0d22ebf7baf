package complete

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLRUPromotesOnGet(t *testing.T) {
	c := newLRU[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)

	_, ok := c.Get("a")
	require.True(t, ok)

	_, evictedVal, evicted := c.Put("c", 3)
	require.True(t, evicted)
	require.Equal(t, 2, evictedVal) // "b" was least-recently-used, not "a"

	require.Equal(t, []string{"c", "a"}, c.Keys())
}

func TestLRUOverflowEvictsTail(t *testing.T) {
	c := newLRU[int, string](1)
	c.Put(1, "one")
	key, val, evicted := c.Put(2, "two")
	require.True(t, evicted)
	require.Equal(t, 1, key)
	require.Equal(t, "one", val)
	require.Equal(t, 1, c.Len())
}

func TestLRURemove(t *testing.T) {
	c := newLRU[string, int](10)
	c.Put("a", 1)
	v, ok := c.Remove("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 0, c.Len())

	_, ok = c.Remove("a")
	require.False(t, ok)
}

func TestLRUUnboundedWhenMaxSizeZero(t *testing.T) {
	c := newLRU[int, int](0)
	for i := 0; i < 100; i++ {
		_, _, evicted := c.Put(i, i)
		require.False(t, evicted)
	}
	require.Equal(t, 100, c.Len())
}
