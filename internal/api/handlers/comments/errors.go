package comments

import (
	"errors"
	"log"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/comments"
	"Hearth/internal/core/pagination"
)

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comments.ErrCommentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "CommentNotFound", "Comment not found")
	case comments.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, pagination.ErrInvalidCursor),
		errors.Is(err, pagination.ErrInvalidSortField),
		errors.Is(err, pagination.ErrInvalidDirection):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case comments.IsReconstructionError(err):
		log.Printf("Comment reconstruction error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "CorruptComment", "Stored comment could not be loaded")
	default:
		log.Printf("Comment service error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Internal server error")
	}
}
