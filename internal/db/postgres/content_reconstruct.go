package postgres

import (
	"database/sql"
	"log/slog"
	"time"

	"Hearth/internal/core/contents"
)

// contentSideData is the denormalized side-data a content row is
// reconstructed with: true totals, bounded recency-ordered previews, and
// shallow stubs for referenced contents. It is assembled by the
// aggregate loader and passed in explicitly, so reconstruction is a pure
// function of its inputs.
type contentSideData struct {
	likePreview    []contents.LikeSummary
	commentPreview []contents.CommentSummary
	referenced     []contents.Stub
	numLikes       int
	numComments    int
}

// reconstructContent maps one raw row plus its side-data to exactly one
// typed variant, or reports which invariant the row violates.
//
// Dispatch order: discriminant → required fields present → forbidden
// fields absent → parse values → build the variant. Media rows get their
// referenced set forced empty regardless of what the row stores.
func reconstructContent(row contentRow, side contentSideData) (*contents.Content, error) {
	contentType := contents.ContentType(row.ContentType)
	spec, ok := contents.FieldsFor(contentType)
	if !ok {
		return nil, &contents.ReconstructionError{
			Reason: contents.ReasonUnknownType,
			RowID:  row.ID,
			Detail: row.ContentType,
		}
	}

	for _, field := range spec.Required {
		if !row.present(field) {
			return nil, &contents.ReconstructionError{
				Reason: contents.ReasonMissingField,
				RowID:  row.ID,
				Field:  field,
			}
		}
	}
	for _, field := range spec.Forbidden() {
		if row.present(field) {
			return nil, &contents.ReconstructionError{
				Reason: contents.ReasonForbiddenField,
				RowID:  row.ID,
				Field:  field,
			}
		}
	}

	content := &contents.Content{
		ID:             row.ID,
		GroupID:        row.GroupID,
		OwnerID:        row.OwnerID,
		Type:           contentType,
		ThumbnailPath:  nullStr(row.ThumbnailPath),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      nullTime(row.UpdatedAt),
		DeletedAt:      nullTime(row.DeletedAt),
		NumLikes:       side.numLikes,
		NumComments:    side.numComments,
		LikePreview:    capPreview(side.likePreview),
		CommentPreview: capPreview(side.commentPreview),
	}

	switch contentType {
	case contents.TypeSystem:
		content.System = &contents.SystemDetail{
			Text:    row.Text.String,
			SubText: nullStr(row.SubText),
		}
	case contents.TypeImage:
		content.Image = &contents.ImageDetail{
			OriginalPath: row.OriginalPath.String,
			Size:         row.Size.Int64,
			Ext:          row.Ext.String,
			MimeType:     row.MimeType.String,
			LargePath:    nullStr(row.LargePath),
		}
	case contents.TypeVideo:
		content.Video = &contents.VideoDetail{
			OriginalPath: row.OriginalPath.String,
			Size:         row.Size.Int64,
			Ext:          row.Ext.String,
			MimeType:     row.MimeType.String,
		}
	case contents.TypePost:
		content.Post = &contents.PostDetail{
			Title: row.Title.String,
			Text:  row.Text.String,
		}
	case contents.TypeBucket:
		status := contents.BucketStatus(row.Status.String)
		if !status.IsValid() {
			return nil, &contents.ReconstructionError{
				Reason: contents.ReasonMalformedValue,
				RowID:  row.ID,
				Field:  contents.FieldStatus,
				Detail: row.Status.String,
			}
		}
		content.Bucket = &contents.BucketDetail{
			Title:  row.Title.String,
			Status: status,
		}
	case contents.TypeSchedule:
		content.Schedule = &contents.ScheduleDetail{
			Title:    row.Title.String,
			EndAt:    row.EndAt.Time,
			StartAt:  nullTime(row.StartAt),
			IsAllDay: nullBool(row.IsAllDay),
		}
	}

	// Media never references other content, no matter what the row or
	// the stub loader produced.
	if contentType.IsMedia() {
		content.ReferencedIDs = []string{}
		content.Referenced = nil
	} else {
		content.ReferencedIDs = append([]string{}, row.ReferencedIDs...)
		content.Referenced = side.referenced
	}

	return content, nil
}

// reconstructContents maps a batch of rows, collecting per-row failures
// instead of aborting. List reads are best-effort: one corrupt row costs
// that row, never the page. Each failure is reported to the logger sink.
func reconstructContents(rows []contentRow, sides map[string]contentSideData, logger *slog.Logger) ([]*contents.Content, []contents.ReconstructionFailure) {
	successes := make([]*contents.Content, 0, len(rows))
	var failures []contents.ReconstructionFailure

	for _, row := range rows {
		content, err := reconstructContent(row, sides[row.ID])
		if err != nil {
			failures = append(failures, contents.ReconstructionFailure{RowID: row.ID, Err: err})
			logger.Warn("dropping content from batch: reconstruction failed",
				"contentId", row.ID,
				"error", err)
			continue
		}
		successes = append(successes, content)
	}

	return successes, failures
}

func capPreview[T any](preview []T) []T {
	if len(preview) > contents.PreviewLimit {
		return preview[:contents.PreviewLimit]
	}
	return preview
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullBool(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	b := nb.Bool
	return &b
}
