package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidComment indicates a comment violates a domain invariant.
	ErrInvalidComment = errors.New("invalid comment")

	// ErrCommentNotFound indicates a write targeted a comment that does
	// not exist or is soft-deleted. Reads return nil instead.
	ErrCommentNotFound = errors.New("comment not found")
)

// ReconstructionError reports that a stored comment row cannot be mapped
// back to a well-formed variant. A malformed tag is not one of these: a
// bad tag drops only that tag, never the comment.
type ReconstructionError struct {
	RowID  string
	Field  string
	Detail string
}

func (e *ReconstructionError) Error() string {
	msg := fmt.Sprintf("comment %s: reconstruction failed", e.RowID)
	if e.Field != "" {
		msg += fmt.Sprintf(": field %s", e.Field)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// IsReconstructionError reports whether err is (or wraps) a
// ReconstructionError.
func IsReconstructionError(err error) bool {
	var re *ReconstructionError
	return errors.As(err, &re)
}

// ReconstructionFailure pairs a raw row id with the error that excluded
// it from a batch result.
type ReconstructionFailure struct {
	Err   error
	RowID string
}

// IsValidationError reports whether err is a domain-validation failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidComment)
}
