// Package pagination defines the cursor-pagination contract shared by
// content feeds, comment threads, and member lists. Every paged read in
// the system goes through the same Request/Page types so the ordering
// and cursor semantics cannot drift between collections.
package pagination

import "errors"

// SortField selects the column a page is ordered by.
// The set is closed: repositories whitelist these against real column
// names before any SQL is built.
type SortField string

const (
	// SortByID orders by the time-ordered UUIDv7 id. Ids are unique and
	// monotonic with creation order, so cursor chains over this field
	// visit every row exactly once. This is the recommended sort field.
	SortByID SortField = "id"

	// SortByCreatedAt orders by creation timestamp. Rows created in the
	// same nanosecond can be skipped or duplicated across page
	// boundaries; callers who care should sort by id instead.
	SortByCreatedAt SortField = "createdAt"
)

// Direction is the page ordering direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const (
	// DefaultLimit is applied when a request asks for zero or negative rows.
	DefaultLimit = 20

	// MaxLimit caps a single page.
	MaxLimit = 100
)

var (
	// ErrInvalidCursor indicates the cursor is malformed, oversized, or
	// does not decode to a value of the requested sort field's shape.
	ErrInvalidCursor = errors.New("invalid pagination cursor")

	// ErrInvalidSortField indicates the sort field is outside the closed set.
	ErrInvalidSortField = errors.New("invalid sort field")

	// ErrInvalidDirection indicates the direction is neither asc nor desc.
	ErrInvalidDirection = errors.New("invalid sort direction")
)

// Request describes one page fetch. A nil Cursor means the first page.
type Request struct {
	Cursor    *string
	SortField SortField
	Direction Direction
	Limit     int
}

// Normalize fills defaults and clamps the limit. It does not validate
// the cursor; that happens when the repository decodes it against the
// sort field.
func (r Request) Normalize() Request {
	if r.SortField == "" {
		r.SortField = SortByID
	}
	if r.Direction == "" {
		r.Direction = Desc
	}
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	return r
}

// Validate checks the closed sets. Called by services before handing the
// request to a repository.
func (r Request) Validate() error {
	switch r.SortField {
	case SortByID, SortByCreatedAt:
	default:
		return ErrInvalidSortField
	}
	switch r.Direction {
	case Asc, Desc:
	default:
		return ErrInvalidDirection
	}
	return nil
}

// Page is one page of results. NextCursor is the sort-field value of the
// last row the store fetched for the page and is nil only when nothing
// was fetched at all. Items may be shorter than what was fetched (rows
// can be dropped as corrupt or degraded), so an empty Items with a
// non-nil NextCursor means "keep walking", not exhaustion.
//
// There is deliberately no "has more" flag: the engine does not peek
// past the requested limit, so the only way to detect exhaustion is to
// request one more page and receive an empty one.
type Page[T any] struct {
	NextCursor *string
	Items      []T
}

// Empty returns a page with no items and no cursor, signaling the end of
// the collection.
func Empty[T any]() Page[T] {
	return Page[T]{}
}
