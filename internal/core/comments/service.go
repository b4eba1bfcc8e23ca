package comments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"Hearth/internal/core/pagination"
)

// Service owns the comment write rules: id minting, timestamping, and
// variant validation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a comment service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// GetComment returns one comment or nil when it does not exist.
func (s *Service) GetComment(ctx context.Context, id string) (*Comment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: comment id is required", ErrInvalidComment)
	}
	return s.repo.FindByID(ctx, id)
}

// GetThreadPage returns one page of a content's comment thread.
func (s *Service) GetThreadPage(ctx context.Context, contentID string, page pagination.Request) (pagination.Page[*Comment], error) {
	if contentID == "" {
		return pagination.Empty[*Comment](), fmt.Errorf("%w: content id is required", ErrInvalidComment)
	}
	page = page.Normalize()
	if err := page.Validate(); err != nil {
		return pagination.Empty[*Comment](), err
	}
	return s.repo.FindPage(ctx, Scope{ContentID: contentID}, page)
}

// GetGroupPage returns one page of every comment in a group, across
// threads. Used for group activity views.
func (s *Service) GetGroupPage(ctx context.Context, groupID string, page pagination.Request) (pagination.Page[*Comment], error) {
	if groupID == "" {
		return pagination.Empty[*Comment](), fmt.Errorf("%w: group id is required", ErrInvalidComment)
	}
	page = page.Normalize()
	if err := page.Validate(); err != nil {
		return pagination.Empty[*Comment](), err
	}
	return s.repo.FindPage(ctx, Scope{GroupID: groupID}, page)
}

// CreateComment validates the comment, mints a time-ordered id, and
// persists it.
func (s *Service) CreateComment(ctx context.Context, comment *Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate comment id: %w", err)
	}
	comment.ID = id.String()
	comment.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.InfoContext(ctx, "comment created",
		"commentId", comment.ID,
		"contentId", comment.ContentID,
		"category", string(comment.Category))
	return nil
}

// DeleteComment soft-deletes a comment.
func (s *Service) DeleteComment(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: comment id is required", ErrInvalidComment)
	}
	return s.repo.Delete(ctx, id)
}
