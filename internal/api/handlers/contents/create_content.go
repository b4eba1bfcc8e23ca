package contents

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/contents"
)

// contentRequest is the JSON payload for creating or updating a
// content. Only the fields of the declared type matter; the service
// rejects payloads whose fields don't match the type.
type contentRequest struct {
	Type          string     `json:"type"`
	Text          string     `json:"text,omitempty"`
	SubText       *string    `json:"subText,omitempty"`
	Title         string     `json:"title,omitempty"`
	Status        string     `json:"status,omitempty"`
	OriginalPath  string     `json:"originalPath,omitempty"`
	Size          int64      `json:"size,omitempty"`
	Ext           string     `json:"ext,omitempty"`
	MimeType      string     `json:"mimeType,omitempty"`
	ThumbnailPath *string    `json:"thumbnailPath,omitempty"`
	LargePath     *string    `json:"largePath,omitempty"`
	StartAt       *time.Time `json:"startAt,omitempty"`
	EndAt         *time.Time `json:"endAt,omitempty"`
	IsAllDay      *bool      `json:"isAllDay,omitempty"`
	ReferencedIDs []string   `json:"referencedIds,omitempty"`
}

// toContent maps the request onto a domain content. The detail struct
// is picked by type; an unknown type leaves every detail nil and fails
// validation downstream.
func (req contentRequest) toContent(groupID, ownerID string) *contents.Content {
	content := &contents.Content{
		GroupID:       groupID,
		OwnerID:       ownerID,
		Type:          contents.ContentType(req.Type),
		ThumbnailPath: req.ThumbnailPath,
		ReferencedIDs: req.ReferencedIDs,
	}

	switch content.Type {
	case contents.TypeSystem:
		content.System = &contents.SystemDetail{Text: req.Text, SubText: req.SubText}
	case contents.TypeImage:
		content.Image = &contents.ImageDetail{
			OriginalPath: req.OriginalPath,
			LargePath:    req.LargePath,
			Size:         req.Size,
			Ext:          req.Ext,
			MimeType:     req.MimeType,
		}
	case contents.TypeVideo:
		content.Video = &contents.VideoDetail{
			OriginalPath: req.OriginalPath,
			Size:         req.Size,
			Ext:          req.Ext,
			MimeType:     req.MimeType,
		}
	case contents.TypePost:
		content.Post = &contents.PostDetail{Title: req.Title, Text: req.Text}
	case contents.TypeBucket:
		content.Bucket = &contents.BucketDetail{
			Title:  req.Title,
			Status: contents.BucketStatus(req.Status),
		}
	case contents.TypeSchedule:
		schedule := &contents.ScheduleDetail{
			Title:    req.Title,
			StartAt:  req.StartAt,
			IsAllDay: req.IsAllDay,
		}
		if req.EndAt != nil {
			schedule.EndAt = *req.EndAt
		}
		content.Schedule = schedule
	}

	return content
}

// CreateContentHandler handles content creation
type CreateContentHandler struct {
	service *contents.Service
}

// NewCreateContentHandler creates a new create content handler
func NewCreateContentHandler(service *contents.Service) *CreateContentHandler {
	return &CreateContentHandler{service: service}
}

// HandleCreateContent handles POST /groups/{groupID}/contents
func (h *CreateContentHandler) HandleCreateContent(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "groupID")
	if groupID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "groupID is required")
		return
	}

	ownerID := middleware.GetUserID(r)
	if ownerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.Type == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "type is required")
		return
	}

	content := req.toContent(groupID, ownerID)
	if err := h.service.CreateContent(r.Context(), content); err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, toContentView(content))
}
