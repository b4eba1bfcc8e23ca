package likes

import "errors"

var (
	// ErrInvalidLike indicates a like is missing its content or user.
	ErrInvalidLike = errors.New("invalid like")
)
