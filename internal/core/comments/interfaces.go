package comments

import (
	"context"

	"Hearth/internal/core/pagination"
)

// Scope narrows a comment page to one content's thread or to every
// thread in a group. Exactly one of the two must be set.
type Scope struct {
	ContentID string
	GroupID   string
}

// Repository defines data access for comments.
type Repository interface {
	// FindByID retrieves one comment with owner and tags hydrated.
	// Returns (nil, nil) when the row is absent or soft-deleted;
	// returns a ReconstructionError when the row exists but is corrupt.
	FindByID(ctx context.Context, id string) (*Comment, error)

	// FindPage retrieves one page of comments for a scope. Corrupt rows
	// are dropped from the page and logged.
	FindPage(ctx context.Context, scope Scope, page pagination.Request) (pagination.Page[*Comment], error)

	// Create inserts a comment row and its tag rows.
	Create(ctx context.Context, comment *Comment) error

	// Delete soft-deletes a comment. Idempotent.
	Delete(ctx context.Context, id string) error
}
