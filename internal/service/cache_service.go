package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/pkg/redis"
)

// CacheService caches activity reads in Redis. All methods tolerate a nil
// Redis client (cache disabled) and treat cache errors as misses: the
// database stays the source of truth.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetActivityWithCache returns the activity from cache, falling back to the
// loader and caching its result.
func (s *CacheService) GetActivityWithCache(ctx context.Context, activityID int64,
	loader func(ctx context.Context, id int64) (*domain.Activity, error)) (*domain.Activity, error) {

	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyActivityByID(activityID)
		if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
			var activity domain.Activity
			if err := json.Unmarshal([]byte(cached), &activity); err == nil {
				return &activity, nil
			}
		}
	}

	activity, err := loader(ctx, activityID)
	if err != nil {
		return nil, err
	}

	s.cacheActivity(ctx, activity)
	return activity, nil
}

// GetHotWithCache returns the hot activity list from cache, falling back to
// the loader.
func (s *CacheService) GetHotWithCache(ctx context.Context, limit int,
	loader func(ctx context.Context, limit int) ([]domain.Activity, error)) ([]domain.Activity, error) {

	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyActivitiesHot()
		if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
			var activities []domain.Activity
			if err := json.Unmarshal([]byte(cached), &activities); err == nil && len(activities) >= limit {
				return activities[:limit], nil
			}
		}
	}

	activities, err := loader(ctx, limit)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(activities); err == nil {
			if err := s.redis.Set(ctx, s.redis.KeyBuilder.KeyActivitiesHot(), string(data), redis.TTLHotList); err != nil {
				s.logger.Warn("failed to cache hot activities", zap.Error(err))
			}
		}
	}

	return activities, nil
}

// InvalidateActivity drops an activity's cached detail and the hot list.
// Called after any mutation that changes the activity or its booked_count.
func (s *CacheService) InvalidateActivity(ctx context.Context, activityID int64) {
	if s.redis == nil {
		return
	}
	err := s.redis.Delete(ctx,
		s.redis.KeyBuilder.KeyActivityByID(activityID),
		s.redis.KeyBuilder.KeyActivitiesHot(),
	)
	if err != nil {
		s.logger.Warn("failed to invalidate activity cache",
			zap.Int64("activity_id", activityID),
			zap.Error(err))
	}
}

// InvalidateUserProfile drops a user's cached profile
func (s *CacheService) InvalidateUserProfile(ctx context.Context, userID int64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Delete(ctx, s.redis.KeyBuilder.KeyUserProfile(userID)); err != nil {
		s.logger.Warn("failed to invalidate user profile cache",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}

// GetUserProfileWithCache returns a user profile from cache, falling back to
// the loader.
func (s *CacheService) GetUserProfileWithCache(ctx context.Context, userID int64,
	loader func(ctx context.Context, id int64) (*domain.User, error)) (*domain.User, error) {

	if s.redis != nil {
		key := s.redis.KeyBuilder.KeyUserProfile(userID)
		if cached, err := s.redis.Get(ctx, key); err == nil && cached != "" {
			var user domain.User
			if err := json.Unmarshal([]byte(cached), &user); err == nil {
				return &user, nil
			}
		}
	}

	user, err := loader(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(user); err == nil {
			if err := s.redis.Set(ctx, s.redis.KeyBuilder.KeyUserProfile(userID), string(data), redis.TTLUserProfile); err != nil {
				s.logger.Warn("failed to cache user profile", zap.Error(err))
			}
		}
	}

	return user, nil
}

func (s *CacheService) cacheActivity(ctx context.Context, activity *domain.Activity) {
	if s.redis == nil || activity == nil {
		return
	}
	data, err := json.Marshal(activity)
	if err != nil {
		return
	}
	key := s.redis.KeyBuilder.KeyActivityByID(activity.ID)
	if err := s.redis.Set(ctx, key, string(data), redis.TTLActivity); err != nil {
		s.logger.Warn("failed to cache activity",
			zap.Int64("activity_id", activity.ID),
			zap.Error(err))
	}
}
