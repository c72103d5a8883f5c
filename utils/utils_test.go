package utils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("ops", "admin", "s3cret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ops", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT("ops", "admin", "s3cret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	token, err := GenerateJWT("ops", "admin", "s3cret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "s3cret")
	assert.Error(t, err)
}

func TestAllowRequest(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := AllowRequest(ctx, rdb, "create-order:1.2.3.4", 3)
		require.NoError(t, err)
		assert.True(t, ok, "hit %d", i+1)
	}
	ok, err := AllowRequest(ctx, rdb, "create-order:1.2.3.4", 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = AllowRequest(ctx, rdb, "create-order:5.6.7.8", 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowRequestSetsWindowTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	for i := 0; i < 3; i++ {
		_, err := AllowRequest(context.Background(), rdb, "send-email:1.2.3.4", 5)
		require.NoError(t, err)
	}

	keys := mr.Keys()
	require.NotEmpty(t, keys)
	for _, key := range keys {
		assert.Equal(t, time.Minute, mr.TTL(key), key)
	}
}

func TestAllowRequestRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	_, err := AllowRequest(context.Background(), rdb, "send-email:1.2.3.4", 5)
	assert.Error(t, err)
}

func TestNewLoggerWritesErrorFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger("development", dir)
	require.NoError(t, err)

	logger.Error("gateway unreachable")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, "errors.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "gateway unreachable")
}
