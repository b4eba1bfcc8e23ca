package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"

	"Hearth/internal/core/contents"
	"Hearth/internal/core/pagination"
)

type postgresContentRepo struct {
	db         *sql.DB
	aggregates *contentAggregates
	logger     *slog.Logger
}

// NewContentRepository creates a new PostgreSQL content repository.
func NewContentRepository(db *sql.DB, logger *slog.Logger) contents.Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &postgresContentRepo{
		db:         db,
		aggregates: newContentAggregates(db, logger),
		logger:     logger,
	}
}

// contentSortColumns whitelists the sortable columns of the contents table.
var contentSortColumns = map[pagination.SortField]string{
	pagination.SortByID:        "c.id",
	pagination.SortByCreatedAt: "c.created_at",
}

// FindByID retrieves one content with aggregates hydrated.
// Returns (nil, nil) for absent or soft-deleted rows. A row that exists
// but fails variant validation surfaces its ReconstructionError: point
// lookups report corruption instead of hiding it.
func (r *postgresContentRepo) FindByID(ctx context.Context, id string) (*contents.Content, error) {
	query := `SELECT ` + contentColumns + `
		FROM contents c
		WHERE c.id = $1 AND ` + notDeleted("c")

	row, err := scanContentRow(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content by id: %w", err)
	}

	side, err := r.aggregates.loadOne(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregates for content %s: %w", id, err)
	}

	return reconstructContent(row, side)
}

// FindPage retrieves one page of a group's contents. Rows that fail
// reconstruction or whose count reads fail are dropped from the page and
// logged; the page itself still succeeds with the survivors.
func (r *postgresContentRepo) FindPage(ctx context.Context, scope contents.Scope, page pagination.Request) (pagination.Page[*contents.Content], error) {
	empty := pagination.Empty[*contents.Content]()

	whereConditions := []string{notDeleted("c"), "c.group_id = $1"}
	args := []interface{}{scope.GroupID}
	paramIndex := 2

	if scope.Type != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("c.content_type = $%d", paramIndex))
		args = append(args, string(*scope.Type))
		paramIndex++
	}

	column, err := sortColumn(contentSortColumns, page.SortField)
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
		FROM contents c
		WHERE %s
		%s
		LIMIT $%d`,
		contentColumns, strings.Join(whereConditions, " AND "),
		orderClause(column, page.Direction), paramIndex)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return empty, fmt.Errorf("failed to query content page: %w", err)
	}
	defer closeRows(rows)

	var rawRows []contentRow
	for rows.Next() {
		row, err := scanContentRow(rows)
		if err != nil {
			return empty, fmt.Errorf("failed to scan content row: %w", err)
		}
		rawRows = append(rawRows, row)
	}
	if err := rows.Err(); err != nil {
		return empty, fmt.Errorf("error iterating content rows: %w", err)
	}

	if len(rawRows) == 0 {
		return empty, nil
	}

	// Aggregate loading drops rows whose count reads failed; keep only
	// survivors so a dropped row cannot surface with zeroed counts.
	sides := r.aggregates.load(ctx, rawRows)
	kept := make([]contentRow, 0, len(rawRows))
	for _, row := range rawRows {
		if _, ok := sides[row.ID]; ok {
			kept = append(kept, row)
		}
	}

	items, _ := reconstructContents(kept, sides, r.logger)

	// The cursor advances past every fetched row, dropped or not. Deriving
	// it from the last surviving item would report exhaustion whenever a
	// whole page is dropped, stranding the rows behind it.
	last := rawRows[len(rawRows)-1]
	return pagination.Page[*contents.Content]{
		Items:      items,
		NextCursor: nextCursor(page.SortField, last.ID, last.CreatedAt),
	}, nil
}

// Create inserts a new content row, writing exactly the subtype columns
// the registry names for the discriminant and NULL for the rest.
func (r *postgresContentRepo) Create(ctx context.Context, content *contents.Content) error {
	text, subText, title, status,
		originalPath, size, ext, mimeType, largePath,
		startAt, endAt, isAllDay := variantColumnValues(content)

	query := `
		INSERT INTO contents (
			id, group_id, owner_id, content_type,
			thumbnail_path, referenced_ids,
			text, sub_text, title, status,
			original_path, size, ext, mime_type, large_path,
			start_datetime, end_datetime, is_all_day,
			created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14, $15,
			$16, $17, $18,
			$19
		)`

	_, err := r.db.ExecContext(ctx, query,
		content.ID, content.GroupID, content.OwnerID, string(content.Type),
		content.ThumbnailPath, pq.Array(content.ReferencedIDs),
		text, subText, title, status,
		originalPath, size, ext, mimeType, largePath,
		startAt, endAt, isAllDay,
		content.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("content already exists: %s", content.ID)
		}
		if strings.Contains(err.Error(), "violates foreign key constraint") {
			return fmt.Errorf("%w: unknown group or owner", contents.ErrInvalidContent)
		}
		return fmt.Errorf("failed to insert content: %w", err)
	}

	return nil
}

// Update rewrites the variant columns of an existing row. Every subtype
// column is in the SET list, so columns left over from a different
// discriminant are cleared to NULL. Group, owner, and type are immutable
// and never written.
func (r *postgresContentRepo) Update(ctx context.Context, content *contents.Content) error {
	text, subText, title, status,
		originalPath, size, ext, mimeType, largePath,
		startAt, endAt, isAllDay := variantColumnValues(content)

	query := `
		UPDATE contents
		SET
			thumbnail_path = $2,
			referenced_ids = $3,
			text = $4, sub_text = $5, title = $6, status = $7,
			original_path = $8, size = $9, ext = $10, mime_type = $11, large_path = $12,
			start_datetime = $13, end_datetime = $14, is_all_day = $15,
			updated_at = $16
		WHERE id = $1 AND ` + notDeleted("contents")

	result, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.ThumbnailPath, pq.Array(content.ReferencedIDs),
		text, subText, title, status,
		originalPath, size, ext, mimeType, largePath,
		startAt, endAt, isAllDay,
		content.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rowsAffected == 0 {
		return contents.ErrContentNotFound
	}

	return nil
}

// Delete soft-deletes a content. Idempotent: zero rows affected means
// the content was already gone, which is fine.
func (r *postgresContentRepo) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE contents
		SET deleted_at = NOW()
		WHERE id = $1 AND ` + notDeleted("contents")

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}
