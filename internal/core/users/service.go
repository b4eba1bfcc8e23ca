package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidUser indicates a user value violates a domain invariant.
	ErrInvalidUser = errors.New("invalid user")
)

// Service owns user registration and lookup.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// GetUser returns one user or nil when it does not exist.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidUser)
	}
	return s.repo.GetByID(ctx, id)
}

// GetUserByHandle returns one user or nil when no user has the handle.
func (s *Service) GetUserByHandle(ctx context.Context, handle string) (*User, error) {
	if handle == "" {
		return nil, fmt.Errorf("%w: handle is required", ErrInvalidUser)
	}
	return s.repo.GetByHandle(ctx, handle)
}

// Register mints an id and persists a new user.
func (s *Service) Register(ctx context.Context, handle, nickname string) (*User, error) {
	if handle == "" || nickname == "" {
		return nil, fmt.Errorf("%w: handle and nickname are required", ErrInvalidUser)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	user := &User{
		ID:        id.String(),
		Handle:    handle,
		Nickname:  nickname,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user registered", "userId", user.ID, "handle", handle)
	return user, nil
}
