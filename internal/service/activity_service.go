package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	defaultHotLimit = 10
)

// ActivityService handles the activity catalog: listing, search, detail,
// organizer CRUD with soft delete. Capacity mutations are out of its hands;
// they belong to the booking lifecycle.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	cacheService *CacheService
	logger       *zap.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo repository.ActivityRepository, cacheService *CacheService, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

// GetActivities returns a page of active activities, optionally filtered by
// title keyword
func (s *ActivityService) GetActivities(ctx context.Context, query domain.ActivityQuery) (*domain.ActivityList, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}
	if query.PageSize > maxPageSize {
		query.PageSize = maxPageSize
	}

	list, err := s.activityRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return list, nil
}

// GetActivityByID returns the activity detail, served from cache when warm
func (s *ActivityService) GetActivityByID(ctx context.Context, id int64) (*domain.Activity, error) {
	return s.cacheService.GetActivityWithCache(ctx, id, s.activityRepo.GetByID)
}

// GetHotActivities returns the most-booked active activities
func (s *ActivityService) GetHotActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit < 1 {
		limit = defaultHotLimit
	}
	return s.cacheService.GetHotWithCache(ctx, limit, s.activityRepo.GetHot)
}

// CreateActivity creates a new bookable activity
func (s *ActivityService) CreateActivity(ctx context.Context, req *domain.CreateActivityRequest) (*domain.Activity, error) {
	if err := validateCreateActivity(req); err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}

	s.logger.Info("activity created",
		zap.Int64("activity_id", activity.ID),
		zap.String("title", activity.Title),
		zap.Int("max_participants", activity.MaxParticipants))

	return activity, nil
}

// UpdateActivity applies a sparse update. The schedule window is validated
// against the merged state so a lone start_time cannot leapfrog the stored
// end_time.
func (s *ActivityService) UpdateActivity(ctx context.Context, id int64, req *domain.UpdateActivityRequest) (*domain.Activity, error) {
	current, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := current.StartTime
	if req.StartTime != nil {
		start = *req.StartTime
	}
	end := current.EndTime
	if req.EndTime != nil {
		end = *req.EndTime
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_time must not precede start_time: %w", domain.ErrInvalidBookingRequest)
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", domain.ErrInvalidBookingRequest)
	}

	activity, err := s.activityRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.cacheService.InvalidateActivity(ctx, id)

	return activity, nil
}

// DeleteActivity soft-deletes an activity. Existing bookings keep their
// status; the activity just stops accepting new ones.
func (s *ActivityService) DeleteActivity(ctx context.Context, id int64) error {
	if err := s.activityRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("activity deactivated", zap.Int64("activity_id", id))
	s.cacheService.InvalidateActivity(ctx, id)

	return nil
}

func validateCreateActivity(req *domain.CreateActivityRequest) error {
	if req.Title == "" {
		return fmt.Errorf("title is required: %w", domain.ErrInvalidBookingRequest)
	}
	if req.MaxParticipants < 1 {
		return fmt.Errorf("max_participants must be positive: %w", domain.ErrInvalidBookingRequest)
	}
	if req.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", domain.ErrInvalidBookingRequest)
	}
	if req.EndTime.Before(req.StartTime) {
		return fmt.Errorf("end_time must not precede start_time: %w", domain.ErrInvalidBookingRequest)
	}
	return nil
}
