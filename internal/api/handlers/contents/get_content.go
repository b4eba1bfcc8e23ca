package contents

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/contents"
)

// GetContentHandler handles single-content retrieval
type GetContentHandler struct {
	service *contents.Service
}

// NewGetContentHandler creates a new get content handler
func NewGetContentHandler(service *contents.Service) *GetContentHandler {
	return &GetContentHandler{service: service}
}

// HandleGetContent handles GET /contents/{contentID}
// Returns the full aggregate: variant detail, counts, previews, and
// referenced stubs.
func (h *GetContentHandler) HandleGetContent(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "contentID is required")
		return
	}

	content, err := h.service.GetContent(r.Context(), contentID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if content == nil {
		handlers.WriteError(w, http.StatusNotFound, "ContentNotFound", "Content not found")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toContentView(content))
}
