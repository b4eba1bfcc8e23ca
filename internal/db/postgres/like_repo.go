package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Hearth/internal/core/likes"
)

type postgresLikeRepo struct {
	db *sql.DB
}

// NewLikeRepository creates a new PostgreSQL like repository.
func NewLikeRepository(db *sql.DB) likes.Repository {
	return &postgresLikeRepo{db: db}
}

// Create inserts a like row. Uniqueness per (content, user) is not
// enforced here; the write paths that own that rule enforce it.
func (r *postgresLikeRepo) Create(ctx context.Context, like *likes.Like) error {
	query := `
		INSERT INTO likes (id, content_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		like.ID, like.ContentID, like.UserID, like.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return fmt.Errorf("%w: unknown content or user", likes.ErrInvalidLike)
		}
		return fmt.Errorf("failed to insert like: %w", err)
	}
	return nil
}

// Delete soft-deletes a user's like on a content so it disappears from
// counts and previews. Idempotent.
func (r *postgresLikeRepo) Delete(ctx context.Context, contentID, userID string) error {
	query := `
		UPDATE likes
		SET deleted_at = NOW()
		WHERE content_id = $1 AND user_id = $2 AND ` + notDeleted("likes")

	if _, err := r.db.ExecContext(ctx, query, contentID, userID); err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}
	return nil
}
