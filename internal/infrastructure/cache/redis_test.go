package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestRedisClient_Connect(t *testing.T) {
	client, _ := setupRedis(t)

	assert.NoError(t, client.Connect(context.Background()))
	assert.NoError(t, client.Ping(context.Background()))
}

func TestRedisClient_IncrementAndExpire(t *testing.T) {
	client, mr := setupRedis(t)
	ctx := context.Background()

	n, err := client.Increment(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.Increment(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, client.Expire(ctx, "login:1.2.3.4", time.Minute))
	ttl, err := client.TTL(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	mr.FastForward(time.Minute + time.Second)
	assert.False(t, mr.Exists("login:1.2.3.4"))
}

func TestRedisClient_PingFailsWhenServerDown(t *testing.T) {
	client, mr := setupRedis(t)
	mr.Close()

	assert.Error(t, client.Ping(context.Background()))
}
