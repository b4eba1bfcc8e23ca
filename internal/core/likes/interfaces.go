package likes

import "context"

// Repository defines data access for likes. Counts and previews for
// content aggregates are computed by the content repository's aggregate
// loader, not here; this interface covers the like write path.
type Repository interface {
	// Create inserts a like row.
	Create(ctx context.Context, like *Like) error

	// Delete soft-deletes a user's like on a content, so it disappears
	// from counts and previews. Idempotent: removing a like that does
	// not exist is not an error.
	Delete(ctx context.Context, contentID, userID string) error
}
