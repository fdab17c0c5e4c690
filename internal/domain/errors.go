package domain

import "errors"

// Expected lifecycle outcomes. Handlers translate these to HTTP responses;
// anything else bubbling out of the stores is a storage failure.
var (
	// ErrActivityNotFound is returned when an activity does not exist or has
	// been deactivated.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrActivityFull is returned when a booking request exceeds the
	// activity's remaining capacity. This is an expected outcome, not a fault.
	ErrActivityFull = errors.New("activity is fully booked")

	// ErrBookingNotFound is returned when a booking does not exist or does
	// not belong to the requesting user.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidBookingStatus is returned when an operation requires a status
	// the booking is not in, e.g. cancelling an already-cancelled booking.
	ErrInvalidBookingStatus = errors.New("booking is not in a valid status for this operation")

	// ErrAlreadyCheckedIn is returned when a booking is checked in twice.
	ErrAlreadyCheckedIn = errors.New("booking already checked in")

	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidBookingRequest is returned when a booking request fails the
	// engine's preconditions, e.g. participants below 1.
	ErrInvalidBookingRequest = errors.New("invalid booking request")
)

// ErrCounterUnderflow reports a booked_count that would go negative on
// release: persisted state contradicts the capacity invariant. It is never
// silently clamped; callers must surface it for operator attention.
var ErrCounterUnderflow = errors.New("booked count underflow: activity counter inconsistent with bookings")
