package users

import "context"

// Repository defines data access for users.
type Repository interface {
	// GetByID retrieves a user by id. Returns (nil, nil) when the user
	// does not exist or is soft-deleted; absence is not an error.
	GetByID(ctx context.Context, id string) (*User, error)

	// GetByHandle retrieves a user by handle. Same absence semantics as
	// GetByID. Used by the login handler.
	GetByHandle(ctx context.Context, handle string) (*User, error)

	// Create inserts a new user row.
	Create(ctx context.Context, user *User) error
}
