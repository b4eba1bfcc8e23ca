// Package groups provides HTTP handlers for group and membership
// operations.
package groups

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/groups"
	"Hearth/internal/core/pagination"
)

type groupView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImagePath *string   `json:"imagePath,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type memberView struct {
	ID       string    `json:"id"`
	GroupID  string    `json:"groupId"`
	UserID   string    `json:"userId"`
	Nickname string    `json:"nickname"`
	JoinedAt time.Time `json:"joinedAt"`
}

type memberPageView struct {
	Items  []memberView `json:"items"`
	Cursor *string      `json:"cursor,omitempty"`
}

func toGroupView(g *groups.Group) groupView {
	return groupView{
		ID:        g.ID,
		Name:      g.Name,
		ImagePath: g.ImagePath,
		CreatedAt: g.CreatedAt,
	}
}

func toMemberView(m *groups.Member) memberView {
	return memberView{
		ID:       m.ID,
		GroupID:  m.GroupID,
		UserID:   m.UserID,
		Nickname: m.Nickname,
		JoinedAt: m.JoinedAt,
	}
}

// GroupHandler handles group reads and writes
type GroupHandler struct {
	service *groups.Service
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(service *groups.Service) *GroupHandler {
	return &GroupHandler{service: service}
}

// HandleGetGroup handles GET /groups/{groupID}
func (h *GroupHandler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "groupID is required")
		return
	}

	group, err := h.service.GetGroup(r.Context(), groupID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if group == nil {
		handlers.WriteError(w, http.StatusNotFound, "GroupNotFound", "Group not found")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, toGroupView(group))
}

// HandleCreateGroup handles POST /groups
// The creator automatically joins as the first member.
func (h *GroupHandler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req struct {
		Name      string  `json:"name"`
		ImagePath *string `json:"imagePath,omitempty"`
		Nickname  string  `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Nickname == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "nickname is required")
		return
	}

	group := &groups.Group{Name: req.Name, ImagePath: req.ImagePath}
	if err := h.service.CreateGroup(r.Context(), group); err != nil {
		handleServiceError(w, err)
		return
	}

	if _, err := h.service.JoinGroup(r.Context(), group.ID, userID, req.Nickname); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, toGroupView(group))
}

// HandleJoinGroup handles POST /groups/{groupID}/members
func (h *GroupHandler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "groupID is required")
		return
	}

	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	member, err := h.service.JoinGroup(r.Context(), groupID, userID, req.Nickname)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, toMemberView(member))
}

// HandleListMembers handles GET /groups/{groupID}/members
func (h *GroupHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.GetMemberPage(r.Context(), groupID, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	view := memberPageView{
		Items:  make([]memberView, 0, len(result.Items)),
		Cursor: result.NextCursor,
	}
	for _, member := range result.Items {
		view.Items = append(view.Items, toMemberView(member))
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, groups.ErrGroupNotFound):
		handlers.WriteError(w, http.StatusNotFound, "GroupNotFound", "Group not found")
	case errors.Is(err, groups.ErrAlreadyMember):
		handlers.WriteError(w, http.StatusConflict, "AlreadyMember", "User is already a member of this group")
	case errors.Is(err, groups.ErrInvalidGroup):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	case errors.Is(err, pagination.ErrInvalidCursor),
		errors.Is(err, pagination.ErrInvalidSortField),
		errors.Is(err, pagination.ErrInvalidDirection):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
	default:
		log.Printf("Group service error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalError", "Internal server error")
	}
}
