// Package postgres implements the core repositories against a
// PostgreSQL store using database/sql. It owns the row↔variant mapping
// (reconstruction), the aggregate count/preview loading, and the cursor
// pagination SQL shared by contents, comments, and members.
package postgres

import (
	"fmt"
	"time"

	"Hearth/internal/core/pagination"
)

// notDeleted returns the soft-delete filter for a table alias. Every
// query construction site goes through this one combinator so that no
// list, lookup, count, or preview can ever see a soft-deleted row; a
// hand-written `deleted_at IS NULL` scattered per query is exactly the
// kind of call site that gets missed.
func notDeleted(alias string) string {
	return alias + ".deleted_at IS NULL"
}

// sortColumn resolves a pagination sort field against a repository's
// whitelist map. Dynamic ORDER BY never interpolates caller input; only
// whitelisted column expressions reach the SQL.
func sortColumn(columns map[pagination.SortField]string, field pagination.SortField) (string, error) {
	column := columns[field]
	if column == "" {
		return "", pagination.ErrInvalidSortField
	}
	return column, nil
}

// cursorClause builds the strict-inequality filter for an exclusive
// cursor: desc pages take rows below the boundary, asc pages rows above
// it, and the boundary row itself is never returned twice. Returns an
// empty clause for a first-page request.
//
// paramIndex is the next free $n placeholder in the enclosing query.
func cursorClause(req pagination.Request, column string, paramIndex int) (string, []interface{}, error) {
	if req.Cursor == nil || *req.Cursor == "" {
		return "", nil, nil
	}

	value, err := pagination.DecodeCursor(*req.Cursor, req.SortField)
	if err != nil {
		return "", nil, err
	}

	op := "<"
	if req.Direction == pagination.Asc {
		op = ">"
	}
	return fmt.Sprintf("%s %s $%d", column, op, paramIndex), []interface{}{value}, nil
}

// orderClause builds the ORDER BY for a page. The column comes from a
// whitelist, never from the caller.
func orderClause(column string, direction pagination.Direction) string {
	dir := "DESC"
	if direction == pagination.Asc {
		dir = "ASC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, dir)
}

// nextCursor encodes the boundary value of the last row fetched for a
// page, whether or not that row survived reconstruction. The engine does
// not peek past the limit: callers detect the end of a collection by
// requesting one more page and receiving an empty one.
func nextCursor(field pagination.SortField, id string, createdAt time.Time) *string {
	var encoded string
	if field == pagination.SortByCreatedAt {
		encoded = pagination.EncodeTimeCursor(createdAt)
	} else {
		encoded = pagination.EncodeCursor(id)
	}
	return &encoded
}
