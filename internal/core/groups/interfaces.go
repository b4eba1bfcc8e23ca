package groups

import (
	"context"

	"Hearth/internal/core/pagination"
)

// Repository defines data access for groups and memberships.
type Repository interface {
	// GetByID retrieves a group. Returns (nil, nil) when absent or
	// soft-deleted.
	GetByID(ctx context.Context, id string) (*Group, error)

	// Create inserts a group row.
	Create(ctx context.Context, group *Group) error

	// CreateMember inserts a membership row. Returns ErrAlreadyMember
	// when the user already has a live membership in the group.
	CreateMember(ctx context.Context, member *Member) error

	// FindMemberPage retrieves one page of a group's members through
	// the shared cursor engine.
	FindMemberPage(ctx context.Context, groupID string, page pagination.Request) (pagination.Page[*Member], error)
}
