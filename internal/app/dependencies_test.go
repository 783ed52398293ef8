package app

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPingRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	deps := &Dependencies{Redis: client}
	require.NoError(t, deps.PingRedis(context.Background(), time.Second))
	require.Error(t, deps.PingDB(context.Background(), time.Second))

	mr.Close()
	require.Error(t, deps.PingRedis(context.Background(), 200*time.Millisecond))
}

func TestNilDependencies(t *testing.T) {
	var deps *Dependencies
	require.Error(t, deps.PingDB(context.Background(), time.Second))
	require.Error(t, deps.PingRedis(context.Background(), time.Second))
}

func TestTaskRedisOpt(t *testing.T) {
	opts, err := redis.ParseURL("redis://user:pw@cache:6380/3")
	require.NoError(t, err)
	conn := TaskRedisOpt(opts)
	require.Equal(t, "cache:6380", conn.Addr)
	require.Equal(t, "user", conn.Username)
	require.Equal(t, "pw", conn.Password)
	require.Equal(t, 3, conn.DB)
}
