package contents

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/contents"
)

// ListContentsHandler handles the group content feed
type ListContentsHandler struct {
	service *contents.Service
}

// NewListContentsHandler creates a new list contents handler
func NewListContentsHandler(service *contents.Service) *ListContentsHandler {
	return &ListContentsHandler{service: service}
}

// HandleListContents handles GET /groups/{groupID}/contents
// Query parameters: cursor, sortField, direction, limit, type.
// An empty items list with no cursor means the feed is exhausted.
func (h *ListContentsHandler) HandleListContents(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "groupID is required")
		return
	}

	page, err := handlers.ParsePageRequest(r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	var contentType *contents.ContentType
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		t := contents.ContentType(typeStr)
		if !t.IsValid() {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "unknown content type: "+typeStr)
			return
		}
		contentType = &t
	}

	result, err := h.service.GetContentPage(r.Context(), groupID, contentType, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toPageView(result))
}
