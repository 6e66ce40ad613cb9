package dedupe

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDeliveryDeduper(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	d := NewLocalDeliveryDeduper()
	d.clock = func() time.Time { return now }

	ok, err := d.Claim(ctx, "env-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = d.Claim(ctx, "env-1", time.Minute)
	assert.False(t, ok, "second claim while held")

	require.NoError(t, d.Release(ctx, "env-1"))
	ok, _ = d.Claim(ctx, "env-1", time.Minute)
	assert.True(t, ok, "claim after release")

	now = now.Add(2 * time.Minute)
	ok, _ = d.Claim(ctx, "env-1", time.Minute)
	assert.True(t, ok, "claim after expiry")
}

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisDeliveryDeduper(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	d := NewRedisDeliveryDeduper(client)
	key := "test-" + time.Now().Format("150405.000000000")
	t.Cleanup(func() { _ = d.Release(ctx, key) })

	ok, err := d.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = d.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Release(ctx, key))
	ok, err = d.Claim(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
