package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/playmaker86/activity-booking/internal/domain"
	"github.com/playmaker86/activity-booking/pkg/database"
)

const activityColumns = `id, title, description, cover_image, location, organizer,
	       start_time, end_time, price, max_participants, booked_count,
	       is_active, created_at, updated_at`

type activityRepository struct {
	db *database.PostgresDB
}

// NewActivityRepository creates a pgx-backed ActivityRepository
func NewActivityRepository(db *database.PostgresDB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities WHERE id = $1`, activityColumns)

	activity, err := scanActivity(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return activity, nil
}

func (r *activityRepository) List(ctx context.Context, q domain.ActivityQuery) (*domain.ActivityList, error) {
	where := `is_active`
	args := []interface{}{}
	if q.Keyword != "" {
		where += ` AND title ILIKE '%' || $1 || '%'`
		args = append(args, q.Keyword)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM activities WHERE %s`, where)
	if err := r.db.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}

	offset := (q.Page - 1) * q.PageSize
	listQuery := fmt.Sprintf(`SELECT %s FROM activities WHERE %s
		 ORDER BY start_time ASC
		 LIMIT $%d OFFSET $%d`, activityColumns, where, len(args)+1, len(args)+2)
	args = append(args, q.PageSize, offset)

	rows, err := r.db.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	items, err := collectActivities(rows)
	if err != nil {
		return nil, err
	}

	return &domain.ActivityList{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func (r *activityRepository) GetHot(ctx context.Context, limit int) ([]domain.Activity, error) {
	query := fmt.Sprintf(`SELECT %s FROM activities
		 WHERE is_active
		 ORDER BY booked_count DESC, start_time ASC
		 LIMIT $1`, activityColumns)

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query hot activities: %w", err)
	}
	defer rows.Close()

	return collectActivities(rows)
}

func (r *activityRepository) Create(ctx context.Context, req *domain.CreateActivityRequest) (*domain.Activity, error) {
	query := fmt.Sprintf(`
		INSERT INTO activities (
			title, description, cover_image, location, organizer,
			start_time, end_time, price, max_participants
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, activityColumns)

	activity, err := scanActivity(r.db.Pool.QueryRow(ctx, query,
		req.Title,
		req.Description,
		req.CoverImage,
		req.Location,
		req.Organizer,
		req.StartTime,
		req.EndTime,
		req.Price,
		req.MaxParticipants,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

func (r *activityRepository) Update(ctx context.Context, id int64, req *domain.UpdateActivityRequest) (*domain.Activity, error) {
	assignments, args := buildActivityUpdate(req)
	if len(assignments) == 0 {
		// Nothing to apply; hand back current state.
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE activities SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		strings.Join(assignments, ", "), len(args), activityColumns)

	activity, err := scanActivity(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	return activity, nil
}

func (r *activityRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE activities SET is_active = false, updated_at = now() WHERE id = $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

// buildActivityUpdate turns a sparse update request into SET assignments and
// their arguments. Fields left nil produce no assignment at all, so absent
// and zero-valued inputs are distinguishable.
func buildActivityUpdate(req *domain.UpdateActivityRequest) ([]string, []interface{}) {
	var assignments []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Description != nil {
		add("description", *req.Description)
	}
	if req.CoverImage != nil {
		add("cover_image", *req.CoverImage)
	}
	if req.Location != nil {
		add("location", *req.Location)
	}
	if req.Organizer != nil {
		add("organizer", *req.Organizer)
	}
	if req.StartTime != nil {
		add("start_time", *req.StartTime)
	}
	if req.EndTime != nil {
		add("end_time", *req.EndTime)
	}
	if req.Price != nil {
		add("price", *req.Price)
	}

	return assignments, args
}

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row rowScanner) (*domain.Activity, error) {
	var a domain.Activity
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Description,
		&a.CoverImage,
		&a.Location,
		&a.Organizer,
		&a.StartTime,
		&a.EndTime,
		&a.Price,
		&a.MaxParticipants,
		&a.BookedCount,
		&a.IsActive,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectActivities(rows pgx.Rows) ([]domain.Activity, error) {
	activities := make([]domain.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return activities, nil
}
