package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"sync"

	"github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"Hearth/internal/core/contents"
)

// maxAggregateConcurrency bounds the fan-out when loading aggregates for
// a page: each content costs up to five independent reads, and a full
// page of 100 contents must not open 500 simultaneous queries against
// the pool.
const maxAggregateConcurrency = 8

// contentAggregates computes the derived side of a content: true
// like/comment totals, bounded recency-ordered previews, and referenced
// content stubs. No transaction wraps the sub-reads; a write racing a
// page load may be visible to the count and not the preview (or vice
// versa), which callers accept.
type contentAggregates struct {
	db     *sql.DB
	logger *slog.Logger
}

func newContentAggregates(db *sql.DB, logger *slog.Logger) *contentAggregates {
	return &contentAggregates{db: db, logger: logger}
}

// load computes side-data for a batch of rows. Aggregation for each
// content is independent; contents whose count reads fail are simply
// absent from the returned map, and the caller drops them from the page.
func (a *contentAggregates) load(ctx context.Context, rows []contentRow) map[string]contentSideData {
	sides := make(map[string]contentSideData, len(rows))
	var mu sync.Mutex

	g := &errgroup.Group{}
	g.SetLimit(maxAggregateConcurrency)

	for _, row := range rows {
		row := row
		g.Go(func() error {
			side, err := a.loadOne(ctx, row)
			if err != nil {
				a.logger.Warn("dropping content from page: aggregate reads failed",
					"contentId", row.ID,
					"error", err)
				return nil
			}
			mu.Lock()
			sides[row.ID] = side
			mu.Unlock()
			return nil
		})
	}

	// Goroutines report degradation through the map, never as errors.
	_ = g.Wait()
	return sides
}

// loadOne runs the count and preview sub-reads for one content in
// parallel. Count failures are hard (the whole item is unusable);
// preview and stub failures degrade softly to empty slices, because a
// count with no preview still renders, while failing the item over a
// preview would trade availability for nothing.
func (a *contentAggregates) loadOne(ctx context.Context, row contentRow) (contentSideData, error) {
	var (
		wg   sync.WaitGroup
		side contentSideData

		likeCountErr, likePreviewErr       error
		commentCountErr, commentPreviewErr error
		referencedErr                      error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		side.numLikes, likeCountErr = a.likeCount(ctx, row.ID)
	}()
	go func() {
		defer wg.Done()
		side.likePreview, likePreviewErr = a.likePreview(ctx, row.ID)
	}()
	go func() {
		defer wg.Done()
		side.numComments, commentCountErr = a.commentCount(ctx, row.ID)
	}()
	go func() {
		defer wg.Done()
		side.commentPreview, commentPreviewErr = a.commentPreview(ctx, row.ID)
	}()

	if len(row.ReferencedIDs) > 0 && !contents.ContentType(row.ContentType).IsMedia() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			side.referenced, referencedErr = a.referencedStubs(ctx, row.ReferencedIDs)
		}()
	}

	wg.Wait()

	if likeCountErr != nil {
		return contentSideData{}, fmt.Errorf("failed to count likes: %w", likeCountErr)
	}
	if commentCountErr != nil {
		return contentSideData{}, fmt.Errorf("failed to count comments: %w", commentCountErr)
	}

	if likePreviewErr != nil {
		a.logger.Warn("like preview degraded to empty",
			"contentId", row.ID, "error", likePreviewErr)
		side.likePreview = nil
	}
	if commentPreviewErr != nil {
		a.logger.Warn("comment preview degraded to empty",
			"contentId", row.ID, "error", commentPreviewErr)
		side.commentPreview = nil
	}
	if referencedErr != nil {
		a.logger.Warn("referenced stubs degraded to empty",
			"contentId", row.ID, "error", referencedErr)
		side.referenced = nil
	}

	return side, nil
}

func (a *contentAggregates) likeCount(ctx context.Context, contentID string) (int, error) {
	query := `SELECT COUNT(*) FROM likes l WHERE l.content_id = $1 AND ` + notDeleted("l")

	var count int
	if err := a.db.QueryRowContext(ctx, query, contentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// likePreview returns the most recent likes, newest first. Ordering is
// explicit (created_at, then id) rather than trusting engine order.
func (a *contentAggregates) likePreview(ctx context.Context, contentID string) ([]contents.LikeSummary, error) {
	query := `
		SELECT l.id, l.user_id, l.created_at
		FROM likes l
		WHERE l.content_id = $1 AND ` + notDeleted("l") + `
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2`

	rows, err := a.db.QueryContext(ctx, query, contentID, contents.PreviewLimit)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var preview []contents.LikeSummary
	for rows.Next() {
		var like contents.LikeSummary
		if err := rows.Scan(&like.ID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, err
		}
		preview = append(preview, like)
	}
	return preview, rows.Err()
}

func (a *contentAggregates) commentCount(ctx context.Context, contentID string) (int, error) {
	query := `SELECT COUNT(*) FROM comments cm WHERE cm.content_id = $1 AND ` + notDeleted("cm")

	var count int
	if err := a.db.QueryRowContext(ctx, query, contentID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (a *contentAggregates) commentPreview(ctx context.Context, contentID string) ([]contents.CommentSummary, error) {
	query := `
		SELECT cm.id, cm.owner_id, cm.text, cm.created_at
		FROM comments cm
		WHERE cm.content_id = $1 AND ` + notDeleted("cm") + `
		ORDER BY cm.created_at DESC, cm.id DESC
		LIMIT $2`

	rows, err := a.db.QueryContext(ctx, query, contentID, contents.PreviewLimit)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var preview []contents.CommentSummary
	for rows.Next() {
		var summary contents.CommentSummary
		var ownerID sql.NullString
		if err := rows.Scan(&summary.ID, &ownerID, &summary.Text, &summary.CreatedAt); err != nil {
			return nil, err
		}
		summary.OwnerID = nullStr(ownerID)
		preview = append(preview, summary)
	}
	return preview, rows.Err()
}

// referencedStubs loads shallow views of referenced contents. Deleted
// references quietly disappear from the stub list.
func (a *contentAggregates) referencedStubs(ctx context.Context, ids []string) ([]contents.Stub, error) {
	query := `
		SELECT c.id, c.content_type, c.thumbnail_path
		FROM contents c
		WHERE c.id = ANY($1) AND ` + notDeleted("c")

	rows, err := a.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var stubs []contents.Stub
	for rows.Next() {
		var stub contents.Stub
		var contentType string
		var thumbnail sql.NullString
		if err := rows.Scan(&stub.ID, &contentType, &thumbnail); err != nil {
			return nil, err
		}
		stub.Type = contents.ContentType(contentType)
		stub.ThumbnailPath = nullStr(thumbnail)
		stubs = append(stubs, stub)
	}
	return stubs, rows.Err()
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("WARN: failed to close rows: %v", err)
	}
}
