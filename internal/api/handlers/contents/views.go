// Package contents provides HTTP handlers for the content API. Handlers
// are thin: they parse, delegate to the content service, and render.
package contents

import (
	"time"

	"Hearth/internal/core/contents"
	"Hearth/internal/core/pagination"
)

// contentView is the JSON shape of one content aggregate.
type contentView struct {
	ID             string               `json:"id"`
	GroupID        string               `json:"groupId"`
	OwnerID        string               `json:"ownerId"`
	Type           string               `json:"type"`
	ThumbnailPath  *string              `json:"thumbnailPath,omitempty"`
	System         *systemView          `json:"system,omitempty"`
	Image          *imageView           `json:"image,omitempty"`
	Video          *videoView           `json:"video,omitempty"`
	Post           *postView            `json:"post,omitempty"`
	Bucket         *bucketView          `json:"bucket,omitempty"`
	Schedule       *scheduleView        `json:"schedule,omitempty"`
	ReferencedIDs  []string             `json:"referencedIds"`
	Referenced     []stubView           `json:"referenced,omitempty"`
	NumLikes       int                  `json:"numLikes"`
	NumComments    int                  `json:"numComments"`
	LikePreview    []likeSummaryView    `json:"likePreview"`
	CommentPreview []commentSummaryView `json:"commentPreview"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      *time.Time           `json:"updatedAt,omitempty"`
}

type systemView struct {
	Text    string  `json:"text"`
	SubText *string `json:"subText,omitempty"`
}

type imageView struct {
	OriginalPath string  `json:"originalPath"`
	LargePath    *string `json:"largePath,omitempty"`
	Size         int64   `json:"size"`
	Ext          string  `json:"ext"`
	MimeType     string  `json:"mimeType"`
}

type videoView struct {
	OriginalPath string `json:"originalPath"`
	Size         int64  `json:"size"`
	Ext          string `json:"ext"`
	MimeType     string `json:"mimeType"`
}

type postView struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type bucketView struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

type scheduleView struct {
	Title    string     `json:"title"`
	StartAt  *time.Time `json:"startAt,omitempty"`
	EndAt    time.Time  `json:"endAt"`
	IsAllDay *bool      `json:"isAllDay,omitempty"`
}

type stubView struct {
	ID            string  `json:"id"`
	Type          string  `json:"type"`
	ThumbnailPath *string `json:"thumbnailPath,omitempty"`
}

type likeSummaryView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type commentSummaryView struct {
	ID        string    `json:"id"`
	OwnerID   *string   `json:"ownerId,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type pageView struct {
	Items  []contentView `json:"items"`
	Cursor *string       `json:"cursor,omitempty"`
}

func toContentView(c *contents.Content) contentView {
	view := contentView{
		ID:            c.ID,
		GroupID:       c.GroupID,
		OwnerID:       c.OwnerID,
		Type:          string(c.Type),
		ThumbnailPath: c.ThumbnailPath,
		ReferencedIDs: c.ReferencedIDs,
		NumLikes:      c.NumLikes,
		NumComments:   c.NumComments,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if view.ReferencedIDs == nil {
		view.ReferencedIDs = []string{}
	}

	if c.System != nil {
		view.System = &systemView{Text: c.System.Text, SubText: c.System.SubText}
	}
	if c.Image != nil {
		view.Image = &imageView{
			OriginalPath: c.Image.OriginalPath,
			LargePath:    c.Image.LargePath,
			Size:         c.Image.Size,
			Ext:          c.Image.Ext,
			MimeType:     c.Image.MimeType,
		}
	}
	if c.Video != nil {
		view.Video = &videoView{
			OriginalPath: c.Video.OriginalPath,
			Size:         c.Video.Size,
			Ext:          c.Video.Ext,
			MimeType:     c.Video.MimeType,
		}
	}
	if c.Post != nil {
		view.Post = &postView{Title: c.Post.Title, Text: c.Post.Text}
	}
	if c.Bucket != nil {
		view.Bucket = &bucketView{Title: c.Bucket.Title, Status: string(c.Bucket.Status)}
	}
	if c.Schedule != nil {
		view.Schedule = &scheduleView{
			Title:    c.Schedule.Title,
			StartAt:  c.Schedule.StartAt,
			EndAt:    c.Schedule.EndAt,
			IsAllDay: c.Schedule.IsAllDay,
		}
	}

	for _, stub := range c.Referenced {
		view.Referenced = append(view.Referenced, stubView{
			ID:            stub.ID,
			Type:          string(stub.Type),
			ThumbnailPath: stub.ThumbnailPath,
		})
	}

	view.LikePreview = make([]likeSummaryView, 0, len(c.LikePreview))
	for _, like := range c.LikePreview {
		view.LikePreview = append(view.LikePreview, likeSummaryView{
			ID:        like.ID,
			UserID:    like.UserID,
			CreatedAt: like.CreatedAt,
		})
	}

	view.CommentPreview = make([]commentSummaryView, 0, len(c.CommentPreview))
	for _, comment := range c.CommentPreview {
		view.CommentPreview = append(view.CommentPreview, commentSummaryView{
			ID:        comment.ID,
			OwnerID:   comment.OwnerID,
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}

	return view
}

func toPageView(page pagination.Page[*contents.Content]) pageView {
	view := pageView{
		Items:  make([]contentView, 0, len(page.Items)),
		Cursor: page.NextCursor,
	}
	for _, item := range page.Items {
		view.Items = append(view.Items, toContentView(item))
	}
	return view
}
