package groups

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"Hearth/internal/core/pagination"
)

// Service owns group and membership writes plus member paging.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a group service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// GetGroup returns one group or nil when it does not exist.
func (s *Service) GetGroup(ctx context.Context, id string) (*Group, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: group id is required", ErrInvalidGroup)
	}
	return s.repo.GetByID(ctx, id)
}

// CreateGroup validates and persists a new group.
func (s *Service) CreateGroup(ctx context.Context, group *Group) error {
	if group.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidGroup)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate group id: %w", err)
	}
	group.ID = id.String()
	group.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, group); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	s.logger.InfoContext(ctx, "group created", "groupId", group.ID)
	return nil
}

// JoinGroup adds a user to a group with the given nickname.
func (s *Service) JoinGroup(ctx context.Context, groupID, userID, nickname string) (*Member, error) {
	if groupID == "" || userID == "" {
		return nil, fmt.Errorf("%w: group id and user id are required", ErrInvalidGroup)
	}
	if nickname == "" {
		return nil, fmt.Errorf("%w: nickname is required", ErrInvalidGroup)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate member id: %w", err)
	}

	member := &Member{
		ID:       id.String(),
		GroupID:  groupID,
		UserID:   userID,
		Nickname: nickname,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateMember(ctx, member); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "member joined", "groupId", groupID, "memberId", member.ID)
	return member, nil
}

// GetMemberPage returns one page of a group's members.
func (s *Service) GetMemberPage(ctx context.Context, groupID string, page pagination.Request) (pagination.Page[*Member], error) {
	if groupID == "" {
		return pagination.Empty[*Member](), fmt.Errorf("%w: group id is required", ErrInvalidGroup)
	}
	page = page.Normalize()
	if err := page.Validate(); err != nil {
		return pagination.Empty[*Member](), err
	}
	return s.repo.FindMemberPage(ctx, groupID, page)
}
