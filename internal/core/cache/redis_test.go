package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"smarty-chef/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisConfig(t *testing.T) config.CacheConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	return config.CacheConfig{
		Enabled:   true,
		Backend:   config.CacheBackendRedis,
		TTL:       time.Minute,
		RedisAddr: addr,
	}
}

func TestRedisStore(t *testing.T) {
	store, err := NewRedisStore(redisConfig(t))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	key := "test:" + t.Name()
	require.NoError(t, store.Set(ctx, key, []byte(`{"title":"Soup"}`)))

	got, ok := store.Get(ctx, key)
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"Soup"}`, string(got))

	_, ok = store.Get(ctx, key+":missing")
	assert.False(t, ok)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	_, err := NewRedisStore(config.CacheConfig{RedisAddr: "127.0.0.1:1", TTL: time.Minute})
	assert.Error(t, err)
}
