package users

import "time"

// User is an account that can own content, write comments, and like
// things. Authentication lives outside this core; users here exist as
// reconstruction targets for ownership references.
type User struct {
	CreatedAt        time.Time
	DeletedAt        *time.Time
	ProfileImagePath *string
	ID               string
	Handle           string
	Nickname         string
}

// Summary is the bounded owner view embedded in reconstructed comments:
// enough to render an author line, nothing more.
type Summary struct {
	ProfileImagePath *string
	UserID           string
	Nickname         string
}
