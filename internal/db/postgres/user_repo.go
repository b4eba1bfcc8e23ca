package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Hearth/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository.
func NewUserRepository(db *sql.DB) users.Repository {
	return &postgresUserRepo{db: db}
}

const userColumns = `u.id, u.handle, u.nickname, u.profile_image_path, u.created_at, u.deleted_at`

func (r *postgresUserRepo) scanUser(s rowScanner) (*users.User, error) {
	var user users.User
	var profileImage sql.NullString
	var deletedAt sql.NullTime

	err := s.Scan(
		&user.ID, &user.Handle, &user.Nickname,
		&profileImage, &user.CreatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ProfileImagePath = nullStr(profileImage)
	user.DeletedAt = nullTime(deletedAt)
	return &user, nil
}

// GetByID retrieves a user. Returns (nil, nil) when absent or
// soft-deleted.
func (r *postgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1 AND ` + notDeleted("u")

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByHandle retrieves a user by handle. Same absence semantics as
// GetByID.
func (r *postgresUserRepo) GetByHandle(ctx context.Context, handle string) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.handle = $1 AND ` + notDeleted("u")

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, handle))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by handle: %w", err)
	}
	return user, nil
}

// Create inserts a user row.
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) error {
	query := `
		INSERT INTO users (id, handle, nickname, profile_image_path, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Handle, user.Nickname, user.ProfileImagePath, user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("user handle already taken: %s", user.Handle)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}
