package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/pkg/redis"
)

func setupCacheService(t *testing.T) *CacheService {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewCacheService(client, zap.NewNop())
}

func TestGetActivityWithCache(t *testing.T) {
	ctx := context.Background()
	cache := setupCacheService(t)

	loads := 0
	loader := func(ctx context.Context, id int64) (*domain.Activity, error) {
		loads++
		return &domain.Activity{ID: id, Title: "city walk", MaxParticipants: 30, IsActive: true}, nil
	}

	first, err := cache.GetActivityWithCache(ctx, 1, loader)
	require.NoError(t, err)
	assert.Equal(t, "city walk", first.Title)
	assert.Equal(t, 1, loads)

	// Second read is served from cache.
	second, err := cache.GetActivityWithCache(ctx, 1, loader)
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, loads)
}

func TestGetActivityWithCacheLoaderError(t *testing.T) {
	ctx := context.Background()
	cache := setupCacheService(t)

	loader := func(ctx context.Context, id int64) (*domain.Activity, error) {
		return nil, domain.ErrActivityNotFound
	}

	_, err := cache.GetActivityWithCache(ctx, 404, loader)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestInvalidateActivity(t *testing.T) {
	ctx := context.Background()
	cache := setupCacheService(t)

	loads := 0
	loader := func(ctx context.Context, id int64) (*domain.Activity, error) {
		loads++
		return &domain.Activity{ID: id, Title: "city walk", BookedCount: loads}, nil
	}

	_, err := cache.GetActivityWithCache(ctx, 1, loader)
	require.NoError(t, err)

	cache.InvalidateActivity(ctx, 1)

	// The stale entry is gone, so the loader runs again.
	refreshed, err := cache.GetActivityWithCache(ctx, 1, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
	assert.Equal(t, 2, refreshed.BookedCount)
}

func TestGetHotWithCache(t *testing.T) {
	ctx := context.Background()
	cache := setupCacheService(t)

	loads := 0
	loader := func(ctx context.Context, limit int) ([]domain.Activity, error) {
		loads++
		return []domain.Activity{
			{ID: 1, BookedCount: 40},
			{ID: 2, BookedCount: 10},
		}, nil
	}

	hot, err := cache.GetHotWithCache(ctx, 2, loader)
	require.NoError(t, err)
	assert.Len(t, hot, 2)
	assert.Equal(t, 1, loads)

	hot, err = cache.GetHotWithCache(ctx, 2, loader)
	require.NoError(t, err)
	assert.Len(t, hot, 2)
	assert.Equal(t, 1, loads)

	// A larger limit cannot be served from the shorter cached list.
	_, err = cache.GetHotWithCache(ctx, 5, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestGetUserProfileWithCache(t *testing.T) {
	ctx := context.Background()
	cache := setupCacheService(t)

	loads := 0
	nickname := "小王"
	loader := func(ctx context.Context, id int64) (*domain.User, error) {
		loads++
		return &domain.User{ID: id, OpenID: "oX7f-abc123", Nickname: &nickname}, nil
	}

	first, err := cache.GetUserProfileWithCache(ctx, 7, loader)
	require.NoError(t, err)
	require.NotNil(t, first.Nickname)
	assert.Equal(t, 1, loads)

	_, err = cache.GetUserProfileWithCache(ctx, 7, loader)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	cache.InvalidateUserProfile(ctx, 7)

	_, err = cache.GetUserProfileWithCache(ctx, 7, loader)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestCacheDisabled(t *testing.T) {
	ctx := context.Background()
	cache := NewCacheService(nil, zap.NewNop())

	loads := 0
	loader := func(ctx context.Context, id int64) (*domain.Activity, error) {
		loads++
		return &domain.Activity{ID: id}, nil
	}

	for i := 0; i < 3; i++ {
		_, err := cache.GetActivityWithCache(ctx, 1, loader)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, loads)

	// Invalidation is a no-op, not a panic.
	cache.InvalidateActivity(ctx, 1)
	cache.InvalidateUserProfile(ctx, 1)
}
