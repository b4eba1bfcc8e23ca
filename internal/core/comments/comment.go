package comments

import (
	"fmt"
	"time"

	"Hearth/internal/core/users"
)

// Category is the discriminant of the two-member comment hierarchy.
type Category string

const (
	// CategoryUser is a comment written by a group member.
	CategoryUser Category = "USER"

	// CategorySystem is a comment generated by the system (joins,
	// schedule reminders). System comments have no owner.
	CategorySystem Category = "SYSTEM"
)

// IsValid checks membership in the closed category set.
func (c Category) IsValid() bool {
	return c == CategoryUser || c == CategorySystem
}

// Comment is one reconstructed comment row. OwnerID presence is exactly
// determined by Category: non-nil for user comments, nil for system
// comments. Owner is the hydrated summary for user comments when the
// owning user still exists.
type Comment struct {
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	OwnerID   *string
	SubText   *string
	Owner     *users.Summary
	ID        string
	ContentID string
	Text      string
	Tags      []Tag
	Category  Category
}

// Tag marks a member mentioned in a user comment. Positions are
// character offsets into Text, in the order they were given.
type Tag struct {
	MemberID  string
	Positions []int
}

// Validate checks the invariants a comment must satisfy before it may be
// persisted.
func (c *Comment) Validate() error {
	if c.ContentID == "" {
		return fmt.Errorf("%w: content id is required", ErrInvalidComment)
	}
	if c.Text == "" {
		return fmt.Errorf("%w: text is required", ErrInvalidComment)
	}
	if !c.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidComment, string(c.Category))
	}

	switch c.Category {
	case CategoryUser:
		if c.OwnerID == nil || *c.OwnerID == "" {
			return fmt.Errorf("%w: user comments require an owner", ErrInvalidComment)
		}
		if c.SubText != nil {
			return fmt.Errorf("%w: user comments cannot carry sub text", ErrInvalidComment)
		}
	case CategorySystem:
		if c.OwnerID != nil {
			return fmt.Errorf("%w: system comments cannot have an owner", ErrInvalidComment)
		}
		if len(c.Tags) > 0 {
			return fmt.Errorf("%w: system comments cannot tag members", ErrInvalidComment)
		}
	}

	textLen := len([]rune(c.Text))
	for _, tag := range c.Tags {
		if tag.MemberID == "" {
			return fmt.Errorf("%w: tag member id is required", ErrInvalidComment)
		}
		for _, pos := range tag.Positions {
			if pos < 0 || pos >= textLen {
				return fmt.Errorf("%w: tag position %d outside text", ErrInvalidComment, pos)
			}
		}
	}

	return nil
}
