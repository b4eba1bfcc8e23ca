package contents

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContent indicates a content value violates a domain
	// invariant and must not be persisted.
	ErrInvalidContent = errors.New("invalid content")

	// ErrUnknownContentType indicates a discriminant outside the closed set.
	ErrUnknownContentType = errors.New("unknown content type")

	// ErrContentNotFound indicates a write targeted a content that does
	// not exist or is soft-deleted. Reads never return this: absence on
	// a read is a nil result, not an error.
	ErrContentNotFound = errors.New("content not found")
)

// ReconstructionReason classifies how a persisted row failed to map back
// to a domain variant.
type ReconstructionReason string

const (
	// ReasonUnknownType means the stored discriminant is outside the registry.
	ReasonUnknownType ReconstructionReason = "unknown_type"

	// ReasonMissingField means a column the registry requires for the
	// discriminant is NULL.
	ReasonMissingField ReconstructionReason = "missing_field"

	// ReasonForbiddenField means a column of another variant is set.
	ReasonForbiddenField ReconstructionReason = "forbidden_field"

	// ReasonMalformedValue means a column is present but its value does
	// not parse into the domain type (bad status, bad tag positions).
	ReasonMalformedValue ReconstructionReason = "malformed_value"
)

// ReconstructionError reports that a stored row cannot be mapped back to
// a well-formed domain variant. Single-row lookups surface it directly;
// batch reads collect it per row and keep going.
type ReconstructionError struct {
	Reason ReconstructionReason
	RowID  string
	Field  Field
	Detail string
}

func (e *ReconstructionError) Error() string {
	msg := fmt.Sprintf("content %s: reconstruction failed (%s)", e.RowID, e.Reason)
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

// IsValidationError reports whether err is a domain-validation failure
// (as opposed to infrastructure trouble).
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidContent) || errors.Is(err, ErrUnknownContentType)
}
