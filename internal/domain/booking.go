package domain

import (
	"time"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	// BookingStatusPending is reserved for future payment flows; no current
	// transition produces it.
	BookingStatusPending BookingStatus = "pending"
	// BookingStatusConfirmed is the initial state of a successful booking.
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusCancelled is terminal; capacity has been released.
	BookingStatusCancelled BookingStatus = "cancelled"
	// BookingStatusCompleted is terminal; the booking was checked in and
	// still occupies capacity.
	BookingStatusCompleted BookingStatus = "completed"
)

// String returns the status as a string
func (s BookingStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is defined out of s.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// OccupiesCapacity reports whether a booking in this status counts toward the
// activity's booked_count.
func (s BookingStatus) OccupiesCapacity() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCompleted
}

// Booking represents one user's reservation against an activity.
// Participants is the number of capacity units this booking holds while its
// status occupies capacity.
type Booking struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"user_id"`
	ActivityID   int64         `json:"activity_id"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Participants int           `json:"participants"`
	Remark       *string       `json:"remark,omitempty"`
	Status       BookingStatus `json:"status"`
	CheckedIn    bool          `json:"checked_in"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CreateBookingRequest represents a booking submission
type CreateBookingRequest struct {
	ActivityID   int64   `json:"activity_id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone"`
	Participants int     `json:"participants"`
	Remark       *string `json:"remark,omitempty"`
}

// BookingList is a list of bookings with its total count
type BookingList struct {
	Items []Booking `json:"items"`
	Total int       `json:"total"`
}
