package likes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service owns the like/unlike write path.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a like service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Like records that a user liked a content.
func (s *Service) Like(ctx context.Context, contentID, userID string) error {
	if contentID == "" || userID == "" {
		return fmt.Errorf("%w: content id and user id are required", ErrInvalidLike)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate like id: %w", err)
	}

	like := &Like{
		ID:        id.String(),
		ContentID: contentID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, like); err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}

	s.logger.InfoContext(ctx, "content liked", "contentId", contentID, "userId", userID)
	return nil
}

// Unlike removes a user's like from a content. Idempotent.
func (s *Service) Unlike(ctx context.Context, contentID, userID string) error {
	if contentID == "" || userID == "" {
		return fmt.Errorf("%w: content id and user id are required", ErrInvalidLike)
	}
	return s.repo.Delete(ctx, contentID, userID)
}
