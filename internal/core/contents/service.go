package contents

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"Hearth/internal/core/pagination"
)

// Service owns the content write rules the repository layer must not
// know about: id minting, timestamping, and variant validation. Reads
// pass through after request validation.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a content service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// GetContent returns one content or nil when it does not exist.
func (s *Service) GetContent(ctx context.Context, id string) (*Content, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: content id is required", ErrInvalidContent)
	}
	return s.repo.FindByID(ctx, id)
}

// GetContentPage returns one page of a group's contents, optionally
// narrowed to a single variant.
func (s *Service) GetContentPage(ctx context.Context, groupID string, contentType *ContentType, page pagination.Request) (pagination.Page[*Content], error) {
	if groupID == "" {
		return pagination.Empty[*Content](), fmt.Errorf("%w: group id is required", ErrInvalidContent)
	}
	if contentType != nil && !contentType.IsValid() {
		return pagination.Empty[*Content](), fmt.Errorf("%w: %q", ErrUnknownContentType, string(*contentType))
	}
	page = page.Normalize()
	if err := page.Validate(); err != nil {
		return pagination.Empty[*Content](), err
	}
	return s.repo.FindPage(ctx, Scope{GroupID: groupID, Type: contentType}, page)
}

// CreateContent validates the variant, mints a time-ordered id, and
// persists the row. The repository never invents identity; it is done
// here so the id is fixed before anything touches the store.
func (s *Service) CreateContent(ctx context.Context, content *Content) error {
	if err := content.Validate(); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate content id: %w", err)
	}
	content.ID = id.String()
	content.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, content); err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}

	s.logger.InfoContext(ctx, "content created",
		"contentId", content.ID,
		"groupId", content.GroupID,
		"type", string(content.Type))
	return nil
}

// UpdateContent validates and persists changes to an existing content.
// Group, owner, and type are immutable; the repository enforces that by
// never writing those columns on update.
func (s *Service) UpdateContent(ctx context.Context, content *Content) error {
	if content.ID == "" {
		return fmt.Errorf("%w: content id is required", ErrInvalidContent)
	}
	if err := content.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	content.UpdatedAt = &now

	if err := s.repo.Update(ctx, content); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "content updated", "contentId", content.ID)
	return nil
}

// DeleteContent soft-deletes a content.
func (s *Service) DeleteContent(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: content id is required", ErrInvalidContent)
	}
	return s.repo.Delete(ctx, id)
}
