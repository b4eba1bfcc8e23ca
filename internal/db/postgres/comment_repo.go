package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/pagination"
	"Hearth/internal/core/users"
)

type postgresCommentRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCommentRepository creates a new PostgreSQL comment repository.
func NewCommentRepository(db *sql.DB, logger *slog.Logger) comments.Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &postgresCommentRepo{db: db, logger: logger}
}

// commentSortColumns whitelists the sortable columns of the comments table.
var commentSortColumns = map[pagination.SortField]string{
	pagination.SortByID:        "cm.id",
	pagination.SortByCreatedAt: "cm.created_at",
}

// FindByID retrieves one comment with owner and tags hydrated.
// Returns (nil, nil) for absent or soft-deleted rows; a corrupt row
// surfaces its ReconstructionError.
func (r *postgresCommentRepo) FindByID(ctx context.Context, id string) (*comments.Comment, error) {
	query := `SELECT ` + commentColumns + `
		FROM comments cm
		WHERE cm.id = $1 AND ` + notDeleted("cm")

	row, err := scanCommentRow(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	tags, err := r.loadTags(ctx, []string{row.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to load tags for comment %s: %w", id, err)
	}

	var owner *users.Summary
	if row.OwnerID.Valid {
		owners, err := r.loadOwners(ctx, []string{row.OwnerID.String})
		if err != nil {
			return nil, fmt.Errorf("failed to load owner for comment %s: %w", id, err)
		}
		if summary, ok := owners[row.OwnerID.String]; ok {
			owner = &summary
		}
	}

	return reconstructComment(row, tags[row.ID], owner, r.logger)
}

// FindPage retrieves one page of comments for a thread (content scope)
// or a whole group (group scope). Corrupt rows are dropped from the page
// and logged.
func (r *postgresCommentRepo) FindPage(ctx context.Context, scope comments.Scope, page pagination.Request) (pagination.Page[*comments.Comment], error) {
	empty := pagination.Empty[*comments.Comment]()

	var (
		joinClause      string
		whereConditions = []string{notDeleted("cm")}
		args            []interface{}
	)
	switch {
	case scope.ContentID != "":
		whereConditions = append(whereConditions, "cm.content_id = $1")
		args = append(args, scope.ContentID)
	case scope.GroupID != "":
		joinClause = "INNER JOIN contents c ON cm.content_id = c.id"
		whereConditions = append(whereConditions, "c.group_id = $1", notDeleted("c"))
		args = append(args, scope.GroupID)
	default:
		return empty, fmt.Errorf("%w: scope requires a content id or group id", comments.ErrInvalidComment)
	}
	paramIndex := 2

	column, err := sortColumn(commentSortColumns, page.SortField)
	if err != nil {
		return empty, err
	}

	clause, cursorArgs, err := cursorClause(page, column, paramIndex)
	if err != nil {
		return empty, err
	}
	if clause != "" {
		whereConditions = append(whereConditions, clause)
		args = append(args, cursorArgs...)
		paramIndex += len(cursorArgs)
	}

	args = append(args, page.Limit)
	query := fmt.Sprintf(`SELECT %s
		FROM comments cm
		%s
		WHERE %s
		%s
		LIMIT $%d`,
		commentColumns, joinClause, strings.Join(whereConditions, " AND "),
		orderClause(column, page.Direction), paramIndex)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return empty, fmt.Errorf("failed to query comment page: %w", err)
	}
	defer closeRows(rows)

	var rawRows []commentRow
	for rows.Next() {
		row, err := scanCommentRow(rows)
		if err != nil {
			return empty, fmt.Errorf("failed to scan comment row: %w", err)
		}
		rawRows = append(rawRows, row)
	}
	if err := rows.Err(); err != nil {
		return empty, fmt.Errorf("error iterating comment rows: %w", err)
	}

	if len(rawRows) == 0 {
		return empty, nil
	}

	commentIDs := make([]string, 0, len(rawRows))
	ownerIDSet := make(map[string]bool)
	for _, row := range rawRows {
		commentIDs = append(commentIDs, row.ID)
		if row.OwnerID.Valid {
			ownerIDSet[row.OwnerID.String] = true
		}
	}

	tagsByComment, err := r.loadTags(ctx, commentIDs)
	if err != nil {
		return empty, fmt.Errorf("failed to load comment tags: %w", err)
	}

	owners := map[string]users.Summary{}
	if len(ownerIDSet) > 0 {
		ownerIDs := make([]string, 0, len(ownerIDSet))
		for id := range ownerIDSet {
			ownerIDs = append(ownerIDs, id)
		}
		owners, err = r.loadOwners(ctx, ownerIDs)
		if err != nil {
			return empty, fmt.Errorf("failed to load comment owners: %w", err)
		}
	}

	items, _ := reconstructComments(rawRows, tagsByComment, owners, r.logger)

	// The cursor advances past every fetched row, dropped or not, so a
	// fully-dropped page never masquerades as the end of the collection.
	last := rawRows[len(rawRows)-1]
	return pagination.Page[*comments.Comment]{
		Items:      items,
		NextCursor: nextCursor(page.SortField, last.ID, last.CreatedAt),
	}, nil
}

// Create inserts a comment row and its tag rows in one transaction.
// Tag positions are serialized back to the delimited string form.
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO comments (
			id, content_id, category, owner_id, text, sub_text, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.ExecContext(ctx, query,
		comment.ID, comment.ContentID, string(comment.Category),
		comment.OwnerID, comment.Text, comment.SubText, comment.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return fmt.Errorf("%w: unknown content or owner", comments.ErrInvalidComment)
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	for _, tag := range comment.Tags {
		positions := make([]string, len(tag.Positions))
		for i, pos := range tag.Positions {
			positions[i] = fmt.Sprintf("%d", pos)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO comment_tags (comment_id, member_id, positions) VALUES ($1, $2, $3)`,
			comment.ID, tag.MemberID, strings.Join(positions, ","),
		)
		if err != nil {
			return fmt.Errorf("failed to insert comment tag: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit comment: %w", err)
	}
	return nil
}

// Delete soft-deletes a comment. Idempotent.
func (r *postgresCommentRepo) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE comments
		SET deleted_at = NOW()
		WHERE id = $1 AND ` + notDeleted("comments")

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// loadTags batch-loads the raw tag rows for a set of comments, keyed by
// comment id, in insertion order.
func (r *postgresCommentRepo) loadTags(ctx context.Context, commentIDs []string) (map[string][]rawTag, error) {
	query := `
		SELECT t.comment_id, t.member_id, t.positions
		FROM comment_tags t
		WHERE t.comment_id = ANY($1)
		ORDER BY t.id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(commentIDs))
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	tags := make(map[string][]rawTag)
	for rows.Next() {
		var tag rawTag
		if err := rows.Scan(&tag.CommentID, &tag.MemberID, &tag.Positions); err != nil {
			return nil, err
		}
		tags[tag.CommentID] = append(tags[tag.CommentID], tag)
	}
	return tags, rows.Err()
}

// loadOwners batch-loads owner summaries. Deleted owners are absent from
// the map; their comments render without an owner summary.
func (r *postgresCommentRepo) loadOwners(ctx context.Context, ownerIDs []string) (map[string]users.Summary, error) {
	query := `
		SELECT u.id, u.nickname, u.profile_image_path
		FROM users u
		WHERE u.id = ANY($1) AND ` + notDeleted("u")

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ownerIDs))
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	owners := make(map[string]users.Summary)
	for rows.Next() {
		var summary users.Summary
		var profileImage sql.NullString
		if err := rows.Scan(&summary.UserID, &summary.Nickname, &profileImage); err != nil {
			return nil, err
		}
		summary.ProfileImagePath = nullStr(profileImage)
		owners[summary.UserID] = summary
	}
	return owners, rows.Err()
}
