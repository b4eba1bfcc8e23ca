package groups

import "time"

// Group is a social group owning contents and members.
type Group struct {
	CreatedAt time.Time
	DeletedAt *time.Time
	ImagePath *string
	ID        string
	Name      string
}

// Member is one user's membership in one group. The member id (not the
// user id) is what comment tags point at, so a user can carry different
// nicknames in different groups.
type Member struct {
	JoinedAt  time.Time
	DeletedAt *time.Time
	ID        string
	GroupID   string
	UserID    string
	Nickname  string
}
