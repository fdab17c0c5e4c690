package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/pkg/database"
)

const bookingColumns = `id, user_id, activity_id, name, phone, participants,
	       remark, status, checked_in, created_at, updated_at`

type bookingRepository struct {
	db *database.PostgresDB
}

// NewBookingRepository creates a pgx-backed BookingRepository
func NewBookingRepository(db *database.PostgresDB) BookingRepository {
	return &bookingRepository{db: db}
}

// CreateConfirmed reserves capacity and inserts the booking in one
// transaction.
//
// The capacity check rides on a conditional UPDATE: postgres takes a row
// lock on the activity before evaluating the predicate against the latest
// committed value, so two requests racing for the last slot serialize on
// that row and at most one sees the predicate hold. A read-then-write check
// in application code would let both pass.
func (r *bookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE activities
		 SET booked_count = booked_count + $2, updated_at = now()
		 WHERE id = $1
		   AND is_active
		   AND booked_count + $2 <= max_participants`,
		booking.ActivityID, booking.Participants)
	if err != nil {
		return fmt.Errorf("failed to reserve capacity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Predicate failed: missing/inactive activity or no capacity.
		var isActive bool
		err := tx.QueryRow(ctx,
			`SELECT is_active FROM activities WHERE id = $1`, booking.ActivityID).Scan(&isActive)
		if errors.Is(err, pgx.ErrNoRows) || (err == nil && !isActive) {
			return domain.ErrActivityNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to inspect activity: %w", err)
		}
		return domain.ErrActivityFull
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO bookings (user_id, activity_id, name, phone, participants, remark, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, status, checked_in, created_at, updated_at`,
		booking.UserID,
		booking.ActivityID,
		booking.Name,
		booking.Phone,
		booking.Participants,
		booking.Remark,
		domain.BookingStatusConfirmed.String(),
	).Scan(&booking.ID, &booking.Status, &booking.CheckedIn, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 AND user_id = $2`, bookingColumns)

	booking, err := scanBooking(r.db.Pool.QueryRow(ctx, query, bookingID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return booking, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`, bookingColumns)

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return bookings, nil
}

// Cancel flips a confirmed booking to cancelled and gives its participants
// back to the activity, atomically. The booking row is locked first so a
// concurrent cancel or check-in on the same booking waits and then fails the
// status guard instead of releasing capacity twice.
func (r *bookingRepository) Cancel(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := lockBookingForUser(ctx, tx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, domain.ErrInvalidBookingStatus
	}

	err = tx.QueryRow(ctx,
		`UPDATE bookings SET status = $2, updated_at = now()
		 WHERE id = $1
		 RETURNING status, updated_at`,
		bookingID, domain.BookingStatusCancelled.String(),
	).Scan(&booking.Status, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	// Release capacity, refusing to go below zero. Zero rows here means the
	// counter no longer covers this booking's participants: persisted state
	// is inconsistent and the whole cancellation is rolled back.
	tag, err := tx.Exec(ctx,
		`UPDATE activities
		 SET booked_count = booked_count - $2, updated_at = now()
		 WHERE id = $1 AND booked_count >= $2`,
		booking.ActivityID, booking.Participants)
	if err != nil {
		return nil, fmt.Errorf("failed to release capacity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("activity %d, booking %d: %w",
			booking.ActivityID, bookingID, domain.ErrCounterUnderflow)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	return booking, nil
}

// CheckIn marks a confirmed booking as attended. booked_count is untouched: a
// completed booking still occupies capacity.
func (r *bookingRepository) CheckIn(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := lockBookingForUser(ctx, tx, bookingID, userID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, domain.ErrInvalidBookingStatus
	}
	if booking.CheckedIn {
		return nil, domain.ErrAlreadyCheckedIn
	}

	err = tx.QueryRow(ctx,
		`UPDATE bookings SET status = $2, checked_in = true, updated_at = now()
		 WHERE id = $1
		 RETURNING status, checked_in, updated_at`,
		bookingID, domain.BookingStatusCompleted.String(),
	).Scan(&booking.Status, &booking.CheckedIn, &booking.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to check in booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit check-in: %w", err)
	}

	return booking, nil
}

// lockBookingForUser loads a booking with FOR UPDATE so status transitions on
// the same booking serialize.
func lockBookingForUser(ctx context.Context, tx pgx.Tx, bookingID, userID int64) (*domain.Booking, error) {
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1 AND user_id = $2 FOR UPDATE`, bookingColumns)

	booking, err := scanBooking(tx.QueryRow(ctx, query, bookingID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}

	return booking, nil
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var status string
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ActivityID,
		&b.Name,
		&b.Phone,
		&b.Participants,
		&b.Remark,
		&status,
		&b.CheckedIn,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}
