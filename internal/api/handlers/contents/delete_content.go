package contents

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/contents"
)

// DeleteContentHandler handles content deletion
type DeleteContentHandler struct {
	service *contents.Service
}

// NewDeleteContentHandler creates a new delete content handler
func NewDeleteContentHandler(service *contents.Service) *DeleteContentHandler {
	return &DeleteContentHandler{service: service}
}

// HandleDeleteContent handles DELETE /contents/{contentID}
// Soft delete; only the owner may delete. Idempotent once the content
// is gone.
func (h *DeleteContentHandler) HandleDeleteContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "contentID is required")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	existing, err := h.service.GetContent(r.Context(), contentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if existing == nil {
		// Already gone; deletion is idempotent.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if existing.OwnerID != userID {
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Only the owner can delete this content")
		return
	}

	if err := h.service.DeleteContent(r.Context(), contentID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
