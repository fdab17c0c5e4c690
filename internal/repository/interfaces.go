package repository

import (
	"context"

	"github.com/playmaker86/activity-booking/internal/domain"
)

// ActivityRepository defines the interface for activity data operations
type ActivityRepository interface {
	// GetByID retrieves an activity by ID regardless of is_active
	GetByID(ctx context.Context, id int64) (*domain.Activity, error)

	// List retrieves active activities with pagination and optional title search
	List(ctx context.Context, query domain.ActivityQuery) (*domain.ActivityList, error)

	// GetHot retrieves active activities ordered by booked_count descending
	GetHot(ctx context.Context, limit int) ([]domain.Activity, error)

	// Create inserts a new activity
	Create(ctx context.Context, req *domain.CreateActivityRequest) (*domain.Activity, error)

	// Update applies a sparse update; nil fields are left unchanged
	Update(ctx context.Context, id int64, req *domain.UpdateActivityRequest) (*domain.Activity, error)

	// SoftDelete marks an activity inactive
	SoftDelete(ctx context.Context, id int64) error
}

// BookingRepository defines the interface for the booking lifecycle's
// persistence. CreateConfirmed, Cancel and CheckIn are each one atomic unit
// of work: the capacity check, the counter mutation and the booking row
// mutation commit together or not at all.
type BookingRepository interface {
	// CreateConfirmed reserves capacity on the activity and inserts the
	// booking as confirmed in a single transaction. Returns
	// domain.ErrActivityNotFound if the activity is missing or inactive,
	// domain.ErrActivityFull if remaining capacity is insufficient.
	CreateConfirmed(ctx context.Context, booking *domain.Booking) error

	// GetForUser retrieves a booking only if it belongs to the user
	GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)

	// ListByUser retrieves a user's bookings, newest first
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)

	// Cancel transitions a confirmed booking to cancelled and releases its
	// capacity in a single transaction. Returns domain.ErrBookingNotFound,
	// domain.ErrInvalidBookingStatus, or domain.ErrCounterUnderflow when the
	// release would drive booked_count negative.
	Cancel(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)

	// CheckIn transitions a confirmed, not-yet-checked-in booking to
	// completed with checked_in set, in a single transaction. Capacity is
	// retained. Returns domain.ErrBookingNotFound,
	// domain.ErrInvalidBookingStatus, or domain.ErrAlreadyCheckedIn.
	CheckIn(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByOpenID retrieves a user by WeChat openid
	GetByOpenID(ctx context.Context, openID string) (*domain.User, error)

	// Create inserts a new user for the given WeChat session
	Create(ctx context.Context, session *domain.WxSession) (*domain.User, error)

	// Update applies a sparse profile update
	Update(ctx context.Context, id int64, req *domain.UpdateUserRequest) (*domain.User, error)
}
