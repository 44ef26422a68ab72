package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryCache_SetGet(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []string{"a", "b"}, 0))

	var got []string
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got)


	hit, err = c.Get(ctx, "otra", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestInMemoryCache_Expires(t *testing.T) {
	c := NewInMemoryCache(20*time.Millisecond, time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1, 0))
	time.Sleep(40 * time.Millisecond)

	var got int
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit, "Una clave caducada es un miss")
}

func TestInMemoryCache_NonPositiveIntervalsDoNotPanic(t *testing.T) {
	// Con CACHE_TTL=0s el arranque pasa 0 como TTL y como intervalo de barrido.
	var c *InMemoryCache
	require.NotPanics(t, func() { c = NewInMemoryCache(0, 0) })
	defer c.Stop()

	require.NoError(t, c.Set(context.Background(), "k", 1, 60))
	time.Sleep(20 * time.Millisecond)

	var got int
	hit, err := c.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.True(t, hit, "Un TTL explícito sigue funcionando")
}

func TestInMemoryCache_StopTwice(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)

	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}

func TestHelpers_NilCacheIsAlwaysMiss(t *testing.T) {
	var dest int

	assert.False(t, GetOrMiss(context.Background(), nil, "k", &dest, zap.NewNop()))
	assert.NotPanics(t, func() { AsyncCacheSet(nil, "k", 1, 0, zap.NewNop()) })
}

func TestAsyncCacheSet_WritesEventually(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()

	AsyncCacheSet(c, "k", 7, 0, zap.NewNop())

	var got int
	assert.Eventually(t, func() bool {
		return GetOrMiss(context.Background(), c, "k", &got, zap.NewNop())
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 7, got)
}
