package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/repository"
)

// UserService handles user profiles. User identity itself comes from the
// WeChat adapter via the auth service; this service only stores and serves
// what hangs off that identity.
type UserService struct {
	userRepo     repository.UserRepository
	cacheService *CacheService
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, cacheService *CacheService, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:     userRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

// FindOrCreateByOpenID returns the user for a WeChat session, creating it on
// first login
func (s *UserService) FindOrCreateByOpenID(ctx context.Context, session *domain.WxSession) (*domain.User, error) {
	user, err := s.userRepo.GetByOpenID(ctx, session.OpenID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	user, err = s.userRepo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID))

	return user, nil
}

// GetProfile returns the user's profile
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.cacheService.GetUserProfileWithCache(ctx, userID, s.userRepo.GetByID)
}

// UpdateProfile applies a sparse profile update
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *domain.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.Update(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	s.cacheService.InvalidateUserProfile(ctx, userID)

	return user, nil
}
