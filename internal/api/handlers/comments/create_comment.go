package comments

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/comments"
)

// createCommentRequest is the JSON payload for posting a comment.
// The API only mints user comments; system comments come from internal
// write paths.
type createCommentRequest struct {
	Text string       `json:"text"`
	Tags []tagRequest `json:"tags,omitempty"`
}

type tagRequest struct {
	MemberID  string `json:"memberId"`
	Positions []int  `json:"positions"`
}

// CreateCommentHandler handles comment creation
type CreateCommentHandler struct {
	service *comments.Service
}

// NewCreateCommentHandler creates a new create comment handler
func NewCreateCommentHandler(service *comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{service: service}
}

// HandleCreateComment handles POST /contents/{contentID}/comments
func (h *CreateCommentHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
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

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Text == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "text is required")
		return
	}

	comment := &comments.Comment{
		ContentID: contentID,
		Category:  comments.CategoryUser,
		OwnerID:   &userID,
		Text:      req.Text,
	}
	for _, tag := range req.Tags {
		comment.Tags = append(comment.Tags, comments.Tag{
			MemberID:  tag.MemberID,
			Positions: tag.Positions,
		})
	}

	if err := h.service.CreateComment(r.Context(), comment); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, toCommentView(comment))
}
