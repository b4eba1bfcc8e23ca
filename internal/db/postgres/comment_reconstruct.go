package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/users"
)

// commentColumns is the full select list for the comments table, aliased
// to "cm".
const commentColumns = `
	cm.id, cm.content_id, cm.category, cm.owner_id,
	cm.text, cm.sub_text,
	cm.created_at, cm.updated_at, cm.deleted_at`

// commentRow is the raw persisted shape of one comments row.
type commentRow struct {
	CreatedAt time.Time
	OwnerID   sql.NullString
	SubText   sql.NullString
	UpdatedAt sql.NullTime
	DeletedAt sql.NullTime
	ID        string
	ContentID string
	Category  string
	Text      string
}

func scanCommentRow(s rowScanner) (commentRow, error) {
	var row commentRow
	err := s.Scan(
		&row.ID, &row.ContentID, &row.Category, &row.OwnerID,
		&row.Text, &row.SubText,
		&row.CreatedAt, &row.UpdatedAt, &row.DeletedAt,
	)
	return row, err
}

// rawTag is one comment_tags row before its positions are parsed.
// Positions are persisted as a comma-delimited string ("3,17,42").
type rawTag struct {
	CommentID string
	MemberID  string
	Positions string
}

// parsePositions parses a delimited position string into an ordered int
// list, preserving the stored order.
func parsePositions(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	positions := make([]int, 0, len(parts))
	for _, part := range parts {
		pos, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("malformed position %q: %w", part, err)
		}
		if pos < 0 {
			return nil, fmt.Errorf("negative position %d", pos)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

// reconstructComment maps one raw comment row to its variant. Owner
// presence is exactly determined by category: a user comment without an
// owner, or a system comment with one, is a corrupt row.
//
// A malformed tag is scoped to that tag: it is dropped and logged, and
// the comment survives without it.
func reconstructComment(row commentRow, tags []rawTag, owner *users.Summary, logger *slog.Logger) (*comments.Comment, error) {
	category := comments.Category(row.Category)
	if !category.IsValid() {
		return nil, &comments.ReconstructionError{
			RowID:  row.ID,
			Field:  "category",
			Detail: fmt.Sprintf("unknown category %q", row.Category),
		}
	}
	if row.Text == "" {
		return nil, &comments.ReconstructionError{
			RowID:  row.ID,
			Field:  "text",
			Detail: "text is required",
		}
	}

	switch category {
	case comments.CategoryUser:
		if !row.OwnerID.Valid || row.OwnerID.String == "" {
			return nil, &comments.ReconstructionError{
				RowID:  row.ID,
				Field:  "owner_id",
				Detail: "user comments require an owner",
			}
		}
		if row.SubText.Valid {
			return nil, &comments.ReconstructionError{
				RowID:  row.ID,
				Field:  "sub_text",
				Detail: "sub_text is exclusive to system comments",
			}
		}
	case comments.CategorySystem:
		if row.OwnerID.Valid {
			return nil, &comments.ReconstructionError{
				RowID:  row.ID,
				Field:  "owner_id",
				Detail: "system comments cannot have an owner",
			}
		}
	}

	comment := &comments.Comment{
		ID:        row.ID,
		ContentID: row.ContentID,
		Category:  category,
		OwnerID:   nullStr(row.OwnerID),
		Text:      row.Text,
		SubText:   nullStr(row.SubText),
		CreatedAt: row.CreatedAt,
		UpdatedAt: nullTime(row.UpdatedAt),
		DeletedAt: nullTime(row.DeletedAt),
	}

	for _, tag := range tags {
		positions, err := parsePositions(tag.Positions)
		if err != nil {
			logger.Warn("dropping malformed comment tag",
				"commentId", row.ID,
				"memberId", tag.MemberID,
				"error", err)
			continue
		}
		comment.Tags = append(comment.Tags, comments.Tag{
			MemberID:  tag.MemberID,
			Positions: positions,
		})
	}

	if category == comments.CategoryUser {
		comment.Owner = owner
	}

	return comment, nil
}

// reconstructComments maps a batch of comment rows, collecting per-row
// failures instead of aborting the page.
func reconstructComments(
	rows []commentRow,
	tagsByComment map[string][]rawTag,
	owners map[string]users.Summary,
	logger *slog.Logger,
) ([]*comments.Comment, []comments.ReconstructionFailure) {
	successes := make([]*comments.Comment, 0, len(rows))
	var failures []comments.ReconstructionFailure

	for _, row := range rows {
		var owner *users.Summary
		if row.OwnerID.Valid {
			if summary, ok := owners[row.OwnerID.String]; ok {
				owner = &summary
			}
		}

		comment, err := reconstructComment(row, tagsByComment[row.ID], owner, logger)
		if err != nil {
			failures = append(failures, comments.ReconstructionFailure{RowID: row.ID, Err: err})
			logger.Warn("dropping comment from batch: reconstruction failed",
				"commentId", row.ID,
				"error", err)
			continue
		}
		successes = append(successes, comment)
	}

	return successes, failures
}
