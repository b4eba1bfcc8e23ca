package likes

import "time"

// Like is one user's like on one content. A user conceptually likes a
// content at most once, but this core does not enforce that uniqueness;
// the write paths that own business rules do.
type Like struct {
	CreatedAt time.Time
	ID        string
	ContentID string
	UserID    string
}
