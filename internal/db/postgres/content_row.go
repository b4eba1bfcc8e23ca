package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"Hearth/internal/core/contents"
)

// contentColumns is the full select list for the contents table, aliased
// to "c". Kept in one place so every read path scans the same shape.
const contentColumns = `
	c.id, c.group_id, c.owner_id, c.content_type,
	c.thumbnail_path, c.referenced_ids,
	c.text, c.sub_text, c.title, c.status,
	c.original_path, c.size, c.ext, c.mime_type, c.large_path,
	c.start_datetime, c.end_datetime, c.is_all_day,
	c.created_at, c.updated_at, c.deleted_at`

// contentRow is the raw persisted shape of one contents row: every
// subtype column nullable, exactly as the table-per-hierarchy schema
// stores it. Reconstruction turns this into a typed variant or rejects
// it; nothing outside this package ever sees a contentRow.
type contentRow struct {
	CreatedAt     time.Time
	ThumbnailPath sql.NullString
	Text          sql.NullString
	SubText       sql.NullString
	Title         sql.NullString
	Status        sql.NullString
	OriginalPath  sql.NullString
	Ext           sql.NullString
	MimeType      sql.NullString
	LargePath     sql.NullString
	Size          sql.NullInt64
	StartAt       sql.NullTime
	EndAt         sql.NullTime
	UpdatedAt     sql.NullTime
	DeletedAt     sql.NullTime
	IsAllDay      sql.NullBool
	ReferencedIDs pq.StringArray
	ID            string
	GroupID       string
	OwnerID       string
	ContentType   string
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContentRow(s rowScanner) (contentRow, error) {
	var row contentRow
	err := s.Scan(
		&row.ID, &row.GroupID, &row.OwnerID, &row.ContentType,
		&row.ThumbnailPath, &row.ReferencedIDs,
		&row.Text, &row.SubText, &row.Title, &row.Status,
		&row.OriginalPath, &row.Size, &row.Ext, &row.MimeType, &row.LargePath,
		&row.StartAt, &row.EndAt, &row.IsAllDay,
		&row.CreatedAt, &row.UpdatedAt, &row.DeletedAt,
	)
	return row, err
}

// present reports whether a registry field is set on this row. This is
// the bridge between the variant registry's field contracts and the
// scanned NULL-able columns.
func (r contentRow) present(f contents.Field) bool {
	switch f {
	case contents.FieldText:
		return r.Text.Valid
	case contents.FieldSubText:
		return r.SubText.Valid
	case contents.FieldTitle:
		return r.Title.Valid
	case contents.FieldStatus:
		return r.Status.Valid
	case contents.FieldOriginalPath:
		return r.OriginalPath.Valid
	case contents.FieldSize:
		return r.Size.Valid
	case contents.FieldExt:
		return r.Ext.Valid
	case contents.FieldMimeType:
		return r.MimeType.Valid
	case contents.FieldThumbnailPath:
		return r.ThumbnailPath.Valid
	case contents.FieldLargePath:
		return r.LargePath.Valid
	case contents.FieldStartAt:
		return r.StartAt.Valid
	case contents.FieldEndAt:
		return r.EndAt.Valid
	case contents.FieldIsAllDay:
		return r.IsAllDay.Valid
	}
	return false
}

// variantColumnValues serializes the inverse mapping for writes: the
// thirteen subtype columns in registry order, populated only for the
// fields the discriminant owns, NULL for everything else. Both Create
// and Update go through this so an update clears stale columns left by
// an earlier discriminant.
func variantColumnValues(c *contents.Content) (
	text, subText, title, status sql.NullString,
	originalPath sql.NullString, size sql.NullInt64, ext, mimeType, largePath sql.NullString,
	startAt, endAt sql.NullTime, isAllDay sql.NullBool,
) {
	switch c.Type {
	case contents.TypeSystem:
		text = sql.NullString{String: c.System.Text, Valid: true}
		if c.System.SubText != nil {
			subText = sql.NullString{String: *c.System.SubText, Valid: true}
		}
	case contents.TypeImage:
		originalPath = sql.NullString{String: c.Image.OriginalPath, Valid: true}
		size = sql.NullInt64{Int64: c.Image.Size, Valid: true}
		ext = sql.NullString{String: c.Image.Ext, Valid: true}
		mimeType = sql.NullString{String: c.Image.MimeType, Valid: true}
		if c.Image.LargePath != nil {
			largePath = sql.NullString{String: *c.Image.LargePath, Valid: true}
		}
	case contents.TypeVideo:
		originalPath = sql.NullString{String: c.Video.OriginalPath, Valid: true}
		size = sql.NullInt64{Int64: c.Video.Size, Valid: true}
		ext = sql.NullString{String: c.Video.Ext, Valid: true}
		mimeType = sql.NullString{String: c.Video.MimeType, Valid: true}
	case contents.TypePost:
		title = sql.NullString{String: c.Post.Title, Valid: true}
		text = sql.NullString{String: c.Post.Text, Valid: true}
	case contents.TypeBucket:
		title = sql.NullString{String: c.Bucket.Title, Valid: true}
		status = sql.NullString{String: string(c.Bucket.Status), Valid: true}
	case contents.TypeSchedule:
		title = sql.NullString{String: c.Schedule.Title, Valid: true}
		endAt = sql.NullTime{Time: c.Schedule.EndAt, Valid: true}
		if c.Schedule.StartAt != nil {
			startAt = sql.NullTime{Time: *c.Schedule.StartAt, Valid: true}
		}
		if c.Schedule.IsAllDay != nil {
			isAllDay = sql.NullBool{Bool: *c.Schedule.IsAllDay, Valid: true}
		}
	}
	return
}
