package contents

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/contents"
)

// UpdateContentHandler handles content updates
type UpdateContentHandler struct {
	service *contents.Service
}

// NewUpdateContentHandler creates a new update content handler
func NewUpdateContentHandler(service *contents.Service) *UpdateContentHandler {
	return &UpdateContentHandler{service: service}
}

// HandleUpdateContent handles PATCH /contents/{contentID}
// The payload carries the full variant field set; group, owner, and
// type are immutable. Only the owner may update.
func (h *UpdateContentHandler) HandleUpdateContent(w http.ResponseWriter, r *http.Request) {
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
		handlers.WriteError(w, http.StatusNotFound, "ContentNotFound", "Content not found")
		return
	}
	if existing.OwnerID != userID {
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Only the owner can update this content")
		return
	}

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Type != "" && req.Type != string(existing.Type) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "content type is immutable")
		return
	}
	req.Type = string(existing.Type)

	updated := req.toContent(existing.GroupID, existing.OwnerID)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := h.service.UpdateContent(r.Context(), updated); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toContentView(updated))
}
