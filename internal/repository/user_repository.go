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

const userColumns = `id, openid, unionid, nickname, avatar, phone, gender,
	       country, province, city, language, is_active, created_at, updated_at`

type userRepository struct {
	db *database.PostgresDB
}

// NewUserRepository creates a pgx-backed UserRepository
func NewUserRepository(db *database.PostgresDB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

func (r *userRepository) GetByOpenID(ctx context.Context, openID string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE openid = $1`, userColumns)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, openID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by openid: %w", err)
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, session *domain.WxSession) (*domain.User, error) {
	var unionID *string
	if session.UnionID != "" {
		unionID = &session.UnionID
	}

	query := fmt.Sprintf(`
		INSERT INTO users (openid, unionid)
		VALUES ($1, $2)
		RETURNING %s`, userColumns)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, session.OpenID, unionID))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *userRepository) Update(ctx context.Context, id int64, req *domain.UpdateUserRequest) (*domain.User, error) {
	assignments, args := buildUserUpdate(req)
	if len(assignments) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		strings.Join(assignments, ", "), len(args), userColumns)

	user, err := scanUser(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// buildUserUpdate mirrors buildActivityUpdate for user profiles: only fields
// present in the request produce an assignment.
func buildUserUpdate(req *domain.UpdateUserRequest) ([]string, []interface{}) {
	var assignments []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Nickname != nil {
		add("nickname", *req.Nickname)
	}
	if req.Avatar != nil {
		add("avatar", *req.Avatar)
	}
	if req.Phone != nil {
		add("phone", *req.Phone)
	}
	if req.Gender != nil {
		add("gender", *req.Gender)
	}
	if req.Country != nil {
		add("country", *req.Country)
	}
	if req.Province != nil {
		add("province", *req.Province)
	}
	if req.City != nil {
		add("city", *req.City)
	}
	if req.Language != nil {
		add("language", *req.Language)
	}

	return assignments, args
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.OpenID,
		&u.UnionID,
		&u.Nickname,
		&u.Avatar,
		&u.Phone,
		&u.Gender,
		&u.Country,
		&u.Province,
		&u.City,
		&u.Language,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
