package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/internal/repository"
)

// BookingService is the booking lifecycle engine. It owns every transition of
// a booking's status and is the only code path that moves an activity's
// booked_count; the atomicity of each transition lives in the repository's
// transactional operations.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	cacheService *CacheService
	logger       *zap.Logger
}

// NewBookingService creates a new booking lifecycle service
func NewBookingService(bookingRepo repository.BookingRepository, cacheService *CacheService, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		cacheService: cacheService,
		logger:       logger,
	}
}

// CreateBooking books participants onto an activity. Exactly one of three
// things happens: a confirmed booking exists and booked_count grew by
// Participants, or the caller learns the activity is gone, or the caller
// learns capacity is exhausted — never a partial effect.
func (s *BookingService) CreateBooking(ctx context.Context, userID int64, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if err := validateCreateBooking(req); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:       userID,
		ActivityID:   req.ActivityID,
		Name:         req.Name,
		Phone:        req.Phone,
		Participants: req.Participants,
		Remark:       req.Remark,
	}

	if err := s.bookingRepo.CreateConfirmed(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) || errors.Is(err, domain.ErrActivityFull) {
			// Expected outcomes, not faults.
			s.logger.Debug("booking rejected",
				zap.Int64("activity_id", req.ActivityID),
				zap.Int64("user_id", userID),
				zap.String("reason", err.Error()))
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("activity_id", booking.ActivityID),
		zap.Int64("user_id", userID),
		zap.Int("participants", booking.Participants))

	s.cacheService.InvalidateActivity(ctx, booking.ActivityID)

	return booking, nil
}

// CancelBooking cancels a confirmed booking owned by userID and releases its
// capacity. Cancelling a booking in any other status is rejected; the status
// guard is the only thing preventing a double release and is enforced under
// the booking row lock.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, userID int64) error {
	booking, err := s.bookingRepo.Cancel(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCounterUnderflow) {
			// Persisted state contradicts the capacity invariant. Surface it
			// loudly; never clamp.
			s.logger.Error("capacity counter inconsistency on cancel",
				zap.Int64("booking_id", bookingID),
				zap.Int64("user_id", userID),
				zap.Error(err))
			return err
		}
		if errors.Is(err, domain.ErrBookingNotFound) || errors.Is(err, domain.ErrInvalidBookingStatus) {
			return err
		}
		return fmt.Errorf("cancel booking: %w", err)
	}

	s.logger.Info("booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("activity_id", booking.ActivityID),
		zap.Int64("user_id", userID),
		zap.Int("participants", booking.Participants))

	s.cacheService.InvalidateActivity(ctx, booking.ActivityID)

	return nil
}

// CheckInBooking marks a confirmed booking as attended, finalizing it as
// completed. The activity's booked_count is unchanged: a completed booking
// still occupies capacity.
func (s *BookingService) CheckInBooking(ctx context.Context, bookingID, userID int64) error {
	booking, err := s.bookingRepo.CheckIn(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) ||
			errors.Is(err, domain.ErrInvalidBookingStatus) ||
			errors.Is(err, domain.ErrAlreadyCheckedIn) {
			return err
		}
		return fmt.Errorf("check in booking: %w", err)
	}

	s.logger.Info("booking checked in",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("activity_id", booking.ActivityID),
		zap.Int64("user_id", userID))

	return nil
}

// GetBooking returns a booking if it belongs to userID
func (s *BookingService) GetBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	return s.bookingRepo.GetForUser(ctx, bookingID, userID)
}

// GetUserBookings returns the caller's bookings, newest first
func (s *BookingService) GetUserBookings(ctx context.Context, userID int64) (*domain.BookingList, error) {
	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &domain.BookingList{Items: bookings, Total: len(bookings)}, nil
}

func validateCreateBooking(req *domain.CreateBookingRequest) error {
	if req.ActivityID <= 0 {
		return fmt.Errorf("activity_id is required: %w", domain.ErrInvalidBookingRequest)
	}
	if req.Participants < 1 {
		return fmt.Errorf("participants must be at least 1: %w", domain.ErrInvalidBookingRequest)
	}
	if req.Name == "" {
		return fmt.Errorf("contact name is required: %w", domain.ErrInvalidBookingRequest)
	}
	if req.Phone == "" {
		return fmt.Errorf("contact phone is required: %w", domain.ErrInvalidBookingRequest)
	}
	return nil
}
