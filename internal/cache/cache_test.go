package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := New("", nil, nil)
	require.True(t, c.IsInMemoryMode())

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	data, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), data)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := New("", nil, nil)

	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := New("", nil, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := New("", nil, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b"))

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheKeysAreIndependent(t *testing.T) {
	c := New("", nil, nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "page:/posts", []byte("page one"), time.Minute))
	require.NoError(t, c.Set(ctx, "page:/posts?page=2", []byte("page two"), time.Minute))

	one, err := c.Get(ctx, "page:/posts")
	require.NoError(t, err)
	two, err := c.Get(ctx, "page:/posts?page=2")
	require.NoError(t, err)
	assert.NotEqual(t, one, two)
}
