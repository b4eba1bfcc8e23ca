package groups

import "errors"

var (
	// ErrInvalidGroup indicates a group or membership violates a domain
	// invariant.
	ErrInvalidGroup = errors.New("invalid group")

	// ErrGroupNotFound indicates a write targeted a group that does not
	// exist or is soft-deleted.
	ErrGroupNotFound = errors.New("group not found")

	// ErrAlreadyMember indicates the user already belongs to the group.
	ErrAlreadyMember = errors.New("user is already a member of this group")
)
