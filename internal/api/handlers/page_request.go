package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"Hearth/internal/core/pagination"
)

// ParsePageRequest reads the shared pagination query parameters
// (cursor, sortField, direction, limit). Missing parameters fall back
// to the pagination defaults; a malformed limit is rejected here while
// cursor and sort validation stay with the pagination package.
func ParsePageRequest(r *http.Request) (pagination.Request, error) {
	query := r.URL.Query()
	req := pagination.Request{}

	if cursor := query.Get("cursor"); cursor != "" {
		req.Cursor = &cursor
	}
	if field := query.Get("sortField"); field != "" {
		req.SortField = pagination.SortField(field)
	}
	if dir := query.Get("direction"); dir != "" {
		req.Direction = pagination.Direction(dir)
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return req, fmt.Errorf("limit must be a valid integer")
		}
		if limit < 1 {
			return req, fmt.Errorf("limit must be positive")
		}
		if limit > pagination.MaxLimit {
			return req, fmt.Errorf("limit cannot exceed %d", pagination.MaxLimit)
		}
		req.Limit = limit
	}

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}
