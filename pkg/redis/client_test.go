package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	client := &Client{
		rdb:        rdb,
		KeyBuilder: NewKeyBuilder("test"),
		log:        zap.NewNop(),
	}
	t.Cleanup(func() { client.Close() })

	return client, mr
}

func TestClientSetGet(t *testing.T) {
	ctx := context.Background()
	client, _ := setupTestClient(t)

	key := client.KeyBuilder.KeyActivityByID(42)
	require.NoError(t, client.Set(ctx, key, "cached-activity", TTLActivity))

	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "cached-activity", val)
}

func TestClientGetMissingKey(t *testing.T) {
	ctx := context.Background()
	client, _ := setupTestClient(t)

	_, err := client.Get(ctx, client.KeyBuilder.KeyActivityByID(404))
	assert.ErrorIs(t, err, Nil)
}

func TestClientSetNX(t *testing.T) {
	ctx := context.Background()
	client, _ := setupTestClient(t)

	key := client.KeyBuilder.KeyWxSessionIdem("code-123")

	ok, err := client.SetNX(ctx, key, "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second claim on the same code loses.
	ok, err = client.SetNX(ctx, key, "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientDelete(t *testing.T) {
	ctx := context.Background()
	client, _ := setupTestClient(t)

	detail := client.KeyBuilder.KeyActivityByID(1)
	hot := client.KeyBuilder.KeyActivitiesHot()
	require.NoError(t, client.Set(ctx, detail, "a", TTLActivity))
	require.NoError(t, client.Set(ctx, hot, "b", TTLHotList))

	require.NoError(t, client.Delete(ctx, detail, hot))

	n, err := client.Exists(ctx, detail, hot)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestClientTTLExpiry(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestClient(t)

	key := client.KeyBuilder.KeyActivitiesHot()
	require.NoError(t, client.Set(ctx, key, "hot-list", TTLHotList))

	mr.FastForward(TTLHotList + time.Second)

	_, err := client.Get(ctx, key)
	assert.ErrorIs(t, err, Nil)
}

func TestClientHealth(t *testing.T) {
	ctx := context.Background()
	client, mr := setupTestClient(t)

	assert.NoError(t, client.Health(ctx))

	mr.Close()
	assert.Error(t, client.Health(ctx))
}

func TestPrefixForLog(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"staging:user:42:profile", "staging:user:42"},
		{"staging:activities:hot", "staging:activities"},
		{"plainkey", "plainkey"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, prefixForLog(tt.key))
	}
}
