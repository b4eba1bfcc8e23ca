package pagination

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxCursorSize bounds the encoded cursor to keep hostile callers from
// shoveling megabytes of base64 through the decoder.
const maxCursorSize = 512

// EncodeCursor wraps a raw sort-field value (a UUID string or an
// RFC3339Nano timestamp) into the opaque form handed to callers.
func EncodeCursor(value string) string {
	return base64.URLEncoding.EncodeToString([]byte(value))
}

// EncodeTimeCursor encodes a createdAt boundary.
func EncodeTimeCursor(t time.Time) string {
	return EncodeCursor(t.UTC().Format(time.RFC3339Nano))
}

// DecodeCursor unwraps an opaque cursor and validates the payload
// against the sort field it will be compared to. Returns the raw value
// suitable for direct use as a query argument.
//
// Errors wrap ErrInvalidCursor so callers can classify without string
// matching.
func DecodeCursor(cursor string, field SortField) (string, error) {
	if len(cursor) > maxCursorSize {
		return "", fmt.Errorf("%w: cursor exceeds maximum length", ErrInvalidCursor)
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64 encoding", ErrInvalidCursor)
	}
	value := string(decoded)

	switch field {
	case SortByID:
		if _, err := uuid.Parse(value); err != nil {
			return "", fmt.Errorf("%w: cursor is not a valid id", ErrInvalidCursor)
		}
	case SortByCreatedAt:
		if _, err := time.Parse(time.RFC3339Nano, value); err != nil {
			return "", fmt.Errorf("%w: cursor is not a valid timestamp", ErrInvalidCursor)
		}
	default:
		return "", ErrInvalidSortField
	}

	return value, nil
}
