package contents

import (
	"fmt"
	"time"
)

// ContentType is the discriminant selecting which variant's field set is
// authoritative for a content row. The set is closed; extending it means
// extending the registry in registry.go and nothing else.
type ContentType string

const (
	TypeSystem   ContentType = "SYSTEM"
	TypeImage    ContentType = "IMAGE"
	TypeVideo    ContentType = "VIDEO"
	TypePost     ContentType = "POST"
	TypeBucket   ContentType = "BUCKET"
	TypeSchedule ContentType = "SCHEDULE"
)

// IsValid checks membership in the closed discriminant set.
func (t ContentType) IsValid() bool {
	switch t {
	case TypeSystem, TypeImage, TypeVideo, TypePost, TypeBucket, TypeSchedule:
		return true
	}
	return false
}

// IsMedia reports whether the type is an uploaded-file variant.
// Media content never references other content, no matter what the
// stored row claims.
func (t ContentType) IsMedia() bool {
	return t == TypeImage || t == TypeVideo
}

// BucketStatus is the progress state of a bucket-list content.
type BucketStatus string

const (
	BucketNotStarted BucketStatus = "NOT_STARTED"
	BucketInProgress BucketStatus = "IN_PROGRESS"
	BucketDone       BucketStatus = "DONE"
)

// IsValid checks membership in the closed status set.
func (s BucketStatus) IsValid() bool {
	switch s {
	case BucketNotStarted, BucketInProgress, BucketDone:
		return true
	}
	return false
}

// Content is the reconstructed aggregate for one row of the contents
// table. Exactly one of the detail pointers is non-nil, and it is the
// one matching Type; anything else is a reconstruction bug, not a valid
// domain state.
//
// NumLikes/NumComments are true totals; LikePreview/CommentPreview are
// bounded to PreviewLimit entries, most recent first. All derived fields
// exclude soft-deleted rows.
type Content struct {
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	ThumbnailPath  *string
	System         *SystemDetail
	Image          *ImageDetail
	Video          *VideoDetail
	Post           *PostDetail
	Bucket         *BucketDetail
	Schedule       *ScheduleDetail
	ID             string
	GroupID        string
	OwnerID        string
	Type           ContentType
	ReferencedIDs  []string
	Referenced     []Stub
	LikePreview    []LikeSummary
	CommentPreview []CommentSummary
	NumLikes       int
	NumComments    int
}

// PreviewLimit bounds like and comment previews.
const PreviewLimit = 5

// SystemDetail carries the fields exclusive to system notices.
type SystemDetail struct {
	SubText *string
	Text    string
}

// ImageDetail carries the fields exclusive to uploaded images.
// The thumbnail lives on the base Content (required for media).
type ImageDetail struct {
	LargePath    *string
	OriginalPath string
	Ext          string
	MimeType     string
	Size         int64
}

// VideoDetail carries the fields exclusive to uploaded videos.
// Videos never have a large rendition; the type makes that unrepresentable.
type VideoDetail struct {
	OriginalPath string
	Ext          string
	MimeType     string
	Size         int64
}

// PostDetail carries the fields exclusive to text posts.
type PostDetail struct {
	Title string
	Text  string
}

// BucketDetail carries the fields exclusive to bucket-list items.
type BucketDetail struct {
	Title  string
	Status BucketStatus
}

// ScheduleDetail carries the fields exclusive to schedule entries.
type ScheduleDetail struct {
	StartAt  *time.Time
	IsAllDay *bool
	Title    string
	EndAt    time.Time
}

// LikeSummary is one entry of a like preview.
type LikeSummary struct {
	CreatedAt time.Time
	ID        string
	UserID    string
}

// CommentSummary is one entry of a comment preview. OwnerID is nil for
// system comments.
type CommentSummary struct {
	CreatedAt time.Time
	OwnerID   *string
	ID        string
	Text      string
}

// Stub is the shallow view of a referenced content, enough to render a
// link card without loading the full aggregate.
type Stub struct {
	ThumbnailPath *string
	ID            string
	Type          ContentType
}

// Validate checks the domain invariants a content must satisfy before it
// may be persisted. Reconstruction performs the mirror-image checks on
// the raw row via the registry.
func (c *Content) Validate() error {
	if c.GroupID == "" {
		return fmt.Errorf("%w: group id is required", ErrInvalidContent)
	}
	if c.OwnerID == "" {
		return fmt.Errorf("%w: owner id is required", ErrInvalidContent)
	}
	if !c.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownContentType, string(c.Type))
	}

	if err := c.validateDetail(); err != nil {
		return err
	}

	if c.Type.IsMedia() {
		if c.ThumbnailPath == nil || *c.ThumbnailPath == "" {
			return fmt.Errorf("%w: media content requires a thumbnail", ErrInvalidContent)
		}
		if len(c.ReferencedIDs) > 0 {
			return fmt.Errorf("%w: media content cannot reference other content", ErrInvalidContent)
		}
	}
	for _, ref := range c.ReferencedIDs {
		if ref == c.ID && c.ID != "" {
			return fmt.Errorf("%w: content cannot reference itself", ErrInvalidContent)
		}
	}

	return nil
}

func (c *Content) validateDetail() error {
	populated := 0
	for _, set := range []bool{
		c.System != nil, c.Image != nil, c.Video != nil,
		c.Post != nil, c.Bucket != nil, c.Schedule != nil,
	} {
		if set {
			populated++
		}
	}
	if populated != 1 {
		return fmt.Errorf("%w: exactly one variant detail must be set, got %d", ErrInvalidContent, populated)
	}

	switch c.Type {
	case TypeSystem:
		if c.System == nil {
			return fmt.Errorf("%w: detail does not match type %s", ErrInvalidContent, c.Type)
		}
		if c.System.Text == "" {
			return fmt.Errorf("%w: system content requires text", ErrInvalidContent)
		}
	case TypeImage:
		if c.Image == nil {
			return fmt.Errorf("%w: detail does not match type %s", ErrInvalidContent, c.Type)
		}
		if err := validateMedia(c.Image.OriginalPath, c.Image.Size, c.Image.Ext, c.Image.MimeType); err != nil {
			return err
		}
	case TypeVideo:
		if c.Video == nil {
			return fmt.Errorf("%w: detail does not match type %s", ErrInvalidContent, c.Type)
		}
		if err := validateMedia(c.Video.OriginalPath, c.Video.Size, c.Video.Ext, c.Video.MimeType); err != nil {
			return err
		}
	case TypePost:
		if c.Post == nil {
			return fmt.Errorf("%w: detail does not match type %s", ErrInvalidContent, c.Type)
		}
		if c.Post.Title == "" || c.Post.Text == "" {
			return fmt.Errorf("%w: post content requires title and text", ErrInvalidContent)
		}
	case TypeBucket:
		if c.Bucket == nil {
			return fmt.Errorf("%w: detail does not match type %s", ErrInvalidContent, c.Type)
		}
		if c.Bucket.Title == "" {
			return fmt.Errorf("%w: bucket content requires a title", ErrInvalidContent)
		}
		if !c.Bucket.Status.IsValid() {
			return fmt.Errorf("%w: invalid bucket status %q", ErrInvalidContent, string(c.Bucket.Status))
		}
	case TypeSchedule:
		if c.Schedule == nil {
			return fmt.Errorf("%w: detail does not match type %s", ErrInvalidContent, c.Type)
		}
		if c.Schedule.Title == "" {
			return fmt.Errorf("%w: schedule content requires a title", ErrInvalidContent)
		}
		if c.Schedule.EndAt.IsZero() {
			return fmt.Errorf("%w: schedule content requires an end time", ErrInvalidContent)
		}
	}

	return nil
}

func validateMedia(originalPath string, size int64, ext, mimeType string) error {
	if originalPath == "" {
		return fmt.Errorf("%w: media content requires an original path", ErrInvalidContent)
	}
	if size <= 0 {
		return fmt.Errorf("%w: media content requires a positive size", ErrInvalidContent)
	}
	if ext == "" || mimeType == "" {
		return fmt.Errorf("%w: media content requires ext and mime type", ErrInvalidContent)
	}
	return nil
}
