package contents

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/likes"
)

// LikeContentHandler handles liking and unliking a content
type LikeContentHandler struct {
	service *likes.Service
}

// NewLikeContentHandler creates a new like content handler
func NewLikeContentHandler(service *likes.Service) *LikeContentHandler {
	return &LikeContentHandler{service: service}
}

// HandleLike handles PUT /contents/{contentID}/like
func (h *LikeContentHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	contentID, userID, ok := likeParams(w, r)
	if !ok {
		return
	}

	if err := h.service.Like(r.Context(), contentID, userID); err != nil {
		handleLikeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnlike handles DELETE /contents/{contentID}/like
// Idempotent: unliking twice succeeds.
func (h *LikeContentHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	contentID, userID, ok := likeParams(w, r)
	if !ok {
		return
	}

	if err := h.service.Unlike(r.Context(), contentID, userID); err != nil {
		handleLikeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func likeParams(w http.ResponseWriter, r *http.Request) (contentID, userID string, ok bool) {
	contentID = chi.URLParam(r, "contentID")
	if contentID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "contentID is required")
		return "", "", false
	}

	userID = middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return "", "", false
	}
	return contentID, userID, true
}

func handleLikeError(w http.ResponseWriter, err error) {
	if errors.Is(err, likes.ErrInvalidLike) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}
	log.Printf("Like service error: %v", err)
	handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Internal server error")
}
