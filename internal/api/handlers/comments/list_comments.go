package comments

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/core/comments"
)

// ListCommentsHandler handles the two comment feeds: a single content's
// thread and a group's activity stream.
type ListCommentsHandler struct {
	service *comments.Service
}

// NewListCommentsHandler creates a new list comments handler
func NewListCommentsHandler(service *comments.Service) *ListCommentsHandler {
	return &ListCommentsHandler{service: service}
}

// HandleListThread handles GET /contents/{contentID}/comments
func (h *ListCommentsHandler) HandleListThread(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentID")
	if contentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "contentID is required")
		return
	}

	page, err := handlers.ParsePageRequest(r)
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := h.service.GetThreadPage(r.Context(), contentID, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toPageView(result))
}

// HandleListGroupComments handles GET /groups/{groupID}/comments
// Every comment in the group, across threads, in one paged stream.
func (h *ListCommentsHandler) HandleListGroupComments(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.GetGroupPage(r.Context(), groupID, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toPageView(result))
}
