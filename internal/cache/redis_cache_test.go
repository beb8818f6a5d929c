package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestCache needs a reachable redis in TEST_REDIS_URL.
func newTestCache(t *testing.T) CacheService {
	t.Helper()
	if testing.Short() {
		t.Skip("redis integration test skipped in short mode")
	}
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	return NewRedisCache(client, zap.NewNop(), "test:"+uuid.NewString()+":")
}

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", entry{Name: "alpha", Count: 1}, time.Minute))

	var got entry
	require.NoError(t, c.Get(ctx, "a", &got))
	assert.Equal(t, entry{Name: "alpha", Count: 1}, got)

	require.NoError(t, c.Delete(ctx, "a"))
	assert.ErrorIs(t, c.Get(ctx, "a", &got), ErrCacheMiss)
}

func TestRedisCache_Expiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", entry{Name: "x"}, 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)

	var got entry
	assert.ErrorIs(t, c.Get(ctx, "short", &got), ErrCacheMiss)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"session:1", "session:2", "other:1"} {
		require.NoError(t, c.Set(ctx, k, entry{Name: k}, time.Minute))
	}

	require.NoError(t, c.DeletePattern(ctx, "session:*"))

	var got entry
	assert.ErrorIs(t, c.Get(ctx, "session:1", &got), ErrCacheMiss)
	assert.ErrorIs(t, c.Get(ctx, "session:2", &got), ErrCacheMiss)
	assert.NoError(t, c.Get(ctx, "other:1", &got))
}
