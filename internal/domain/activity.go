package domain

import (
	"time"
)

// Activity represents a bookable event with a participant capacity.
// BookedCount is a denormalized aggregate: it must always equal the sum of
// Participants over this activity's confirmed and completed bookings, and is
// mutated only through the booking lifecycle.
type Activity struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	CoverImage      *string   `json:"cover_image,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Organizer       *string   `json:"organizer,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Price           float64   `json:"price"`
	MaxParticipants int       `json:"max_participants"`
	BookedCount     int       `json:"booked_count"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RemainingCapacity returns the number of unclaimed participant slots.
func (a *Activity) RemainingCapacity() int {
	return a.MaxParticipants - a.BookedCount
}

// CreateActivityRequest represents an organizer's request to create an activity
type CreateActivityRequest struct {
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	CoverImage      *string   `json:"cover_image,omitempty"`
	Location        *string   `json:"location,omitempty"`
	Organizer       *string   `json:"organizer,omitempty"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Price           float64   `json:"price"`
	MaxParticipants int       `json:"max_participants"`
}

// UpdateActivityRequest carries a sparse activity update; nil fields are left
// unchanged. Capacity and booked_count are deliberately absent: capacity is
// fixed at creation and the counter belongs to the booking lifecycle.
type UpdateActivityRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	CoverImage  *string    `json:"cover_image,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Organizer   *string    `json:"organizer,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Price       *float64   `json:"price,omitempty"`
}

// ActivityList is a paginated list of activities
type ActivityList struct {
	Items    []Activity `json:"items"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// ActivityQuery holds listing parameters for the activity catalog
type ActivityQuery struct {
	Page     int
	PageSize int
	Keyword  string
}
