package contents

import (
	"context"

	"Hearth/internal/core/pagination"
)

// Scope narrows a content page to one group, optionally to one variant.
type Scope struct {
	Type    *ContentType
	GroupID string
}

// Repository defines data access for contents. Implementations own the
// row↔variant mapping: reads return fully reconstructed aggregates with
// counts and previews attached, writes serialize exactly the columns the
// variant registry names for the discriminant and NULL the rest.
type Repository interface {
	// FindByID retrieves one content with aggregates hydrated. Returns
	// (nil, nil) when the row is absent or soft-deleted. Returns a
	// ReconstructionError when the row exists but violates its variant
	// contract: point lookups must not hide corruption.
	FindByID(ctx context.Context, id string) (*Content, error)

	// FindPage retrieves one page of contents for a scope. Rows that
	// fail reconstruction or whose aggregate count reads fail are
	// dropped from the page and logged; the page itself still succeeds.
	FindPage(ctx context.Context, scope Scope, page pagination.Request) (pagination.Page[*Content], error)

	// Create inserts a new content row. The caller has already minted
	// the id and validated the variant.
	Create(ctx context.Context, content *Content) error

	// Update rewrites the variant columns of an existing row, clearing
	// any subtype column the discriminant does not own. Returns
	// ErrContentNotFound when the row is absent or soft-deleted.
	Update(ctx context.Context, content *Content) error

	// Delete soft-deletes a content. Idempotent: deleting an already
	// deleted content is not an error.
	Delete(ctx context.Context, id string) error
}
