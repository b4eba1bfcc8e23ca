package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/comments"
)

// GetCommentHandler handles single-comment retrieval
type GetCommentHandler struct {
	service *comments.Service
}

// NewGetCommentHandler creates a new get comment handler
func NewGetCommentHandler(service *comments.Service) *GetCommentHandler {
	return &GetCommentHandler{service: service}
}

// HandleGetComment handles GET /comments/{commentID}
func (h *GetCommentHandler) HandleGetComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentID")
	if commentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "commentID is required")
		return
	}

	comment, err := h.service.GetComment(r.Context(), commentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if comment == nil {
		handlers.WriteError(w, http.StatusNotFound, "CommentNotFound", "Comment not found")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toCommentView(comment))
}
