package contents

import (
	"errors"
	"log"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/contents"
	"Hearth/internal/core/pagination"
)

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contents.ErrContentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "ContentNotFound", "Content not found")
	case contents.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, pagination.ErrInvalidCursor),
		errors.Is(err, pagination.ErrInvalidSortField),
		errors.Is(err, pagination.ErrInvalidDirection):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case contents.IsReconstructionError(err):
		// A stored row that cannot be mapped back is server-side corruption,
		// not a client mistake.
		log.Printf("Content reconstruction error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "CorruptContent", "Stored content could not be loaded")
	default:
		log.Printf("Content service error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Internal server error")
	}
}
