package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestay/infras/otel/mocks"
	"homestay/shared/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedBooking struct {
	ID    int64  `json:"id"`
	Guest string `json:"guest"`
}

func newCache(t *testing.T) (cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return cache.NewRedisCache(client, mocks.NewOtel()), mr
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "booking:get:1", cachedBooking{ID: 1, Guest: "Budi"}, 60))

	var got cachedBooking
	require.NoError(t, c.Get(ctx, "booking:get:1", &got))
	assert.Equal(t, cachedBooking{ID: 1, Guest: "Budi"}, got)

	mr.FastForward(61 * time.Second)

	err := c.Get(ctx, "booking:get:1", &got)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_GetString(t *testing.T) {
	c, _ := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "plain", "value", 60))

	var got string
	require.NoError(t, c.Get(ctx, "plain", &got))
	assert.Equal(t, "value", got)
}

func TestRedisCache_Clear(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "booking:gets:a", 1, 60))
	require.NoError(t, c.Save(ctx, "booking:gets:b", 2, 60))
	require.NoError(t, c.Save(ctx, "room:gets:a", 3, 60))

	require.NoError(t, c.Clear(ctx, "booking:gets:*"))

	assert.False(t, mr.Exists("booking:gets:a"))
	assert.False(t, mr.Exists("booking:gets:b"))
	assert.True(t, mr.Exists("room:gets:a"))
}

func TestRedisCache_Delete(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	require.NoError(t, c.Save(ctx, "booking:get:7", 7, 60))
	require.NoError(t, c.Delete(ctx, "booking:get:7"))

	assert.False(t, mr.Exists("booking:get:7"))
}

func TestRedisCache_Increment(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := c.Increment(ctx, "limiter:127.0.0.1", 30)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.Equal(t, 30*time.Second, mr.TTL("limiter:127.0.0.1"))

	mr.FastForward(31 * time.Second)

	got, err := c.Increment(ctx, "limiter:127.0.0.1", 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}
