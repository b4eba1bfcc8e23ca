package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/comments"
)

// DeleteCommentHandler handles comment deletion
type DeleteCommentHandler struct {
	service *comments.Service
}

// NewDeleteCommentHandler creates a new delete comment handler
func NewDeleteCommentHandler(service *comments.Service) *DeleteCommentHandler {
	return &DeleteCommentHandler{service: service}
}

// HandleDeleteComment handles DELETE /comments/{commentID}
// Soft delete; only the owner may delete their comment. Idempotent once
// the comment is gone.
func (h *DeleteCommentHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	if commentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "commentID is required")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	existing, err := h.service.GetComment(r.Context(), commentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if existing == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if existing.OwnerID == nil || *existing.OwnerID != userID {
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Only the owner can delete this comment")
		return
	}

	if err := h.service.DeleteComment(r.Context(), commentID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
