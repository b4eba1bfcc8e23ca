package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"Hearth/internal/core/contents"
	"Hearth/internal/core/pagination"
)

func reqDefaults(t *testing.T) pagination.Request {
	t.Helper()
	return pagination.Request{}.Normalize()
}

// contentID mints a deterministic UUID-shaped id whose lexicographic
// order follows n.
func contentID(n int) string {
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", n)
}

var contentRowColumns = []string{
	"id", "group_id", "owner_id", "content_type",
	"thumbnail_path", "referenced_ids",
	"text", "sub_text", "title", "status",
	"original_path", "size", "ext", "mime_type", "large_path",
	"start_datetime", "end_datetime", "is_all_day",
	"created_at", "updated_at", "deleted_at",
}

func postRowValues(id string, createdAt time.Time) []driver.Value {
	return []driver.Value{
		id, "group-1", "user-1", "POST",
		nil, "{}",
		"Thinking about October.", nil, "Trip plans", nil,
		nil, nil, nil, nil, nil,
		nil, nil, nil,
		createdAt, nil, nil,
	}
}

// expectAggregates registers the four per-content sub-reads the
// aggregate loader fires. They run concurrently, so callers must have
// MatchExpectationsInOrder(false) set.
func expectAggregates(mock sqlmock.Sqlmock, contentID string, numLikes, numComments int) {
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes`).
		WithArgs(contentID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(numLikes))
	mock.ExpectQuery(`SELECT l\.id, l\.user_id`).
		WithArgs(contentID, contents.PreviewLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments`).
		WithArgs(contentID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(numComments))
	mock.ExpectQuery(`SELECT cm\.id, cm\.owner_id`).
		WithArgs(contentID, contents.PreviewLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "text", "created_at"}))
}

func newContentRepoMock(t *testing.T) (contents.Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	return NewContentRepository(db, discardLogger()), mock, db
}

func TestContentRepoFindByIDAbsent(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.id = \$1 AND c\.deleted_at IS NULL`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	content, err := repo.FindByID(context.Background(), "nope")
	if err != nil {
		t.Fatalf("FindByID() error = %v, absence must not be an error", err)
	}
	if content != nil {
		t.Errorf("FindByID() = %+v, want nil", content)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestContentRepoFindByID(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	createdAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE c\.id = \$1 AND c\.deleted_at IS NULL`).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows(contentRowColumns).AddRow(postRowValues("c1", createdAt)...))
	expectAggregates(mock, "c1", 7, 3)

	content, err := repo.FindByID(context.Background(), "c1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if content == nil {
		t.Fatal("FindByID() = nil")
	}
	if content.Post == nil || content.Post.Title != "Trip plans" {
		t.Errorf("Post = %+v", content.Post)
	}
	if content.NumLikes != 7 || content.NumComments != 3 {
		t.Errorf("counts = %d/%d, want 7/3", content.NumLikes, content.NumComments)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// A corrupt row in a page costs that row; the survivors still come back.
func TestContentRepoFindPageSkipsCorruptRows(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	corrupt := postRowValues("bad", base.Add(-time.Minute))
	corrupt[8] = nil // title NULL on a POST row

	rows := sqlmock.NewRows(contentRowColumns).
		AddRow(postRowValues("ok-1", base)...).
		AddRow(corrupt...).
		AddRow(postRowValues("ok-2", base.Add(-2*time.Minute))...)

	mock.ExpectQuery(`WHERE c\.deleted_at IS NULL AND c\.group_id = \$1`).
		WithArgs("group-1", 20).
		WillReturnRows(rows)
	expectAggregates(mock, "ok-1", 0, 0)
	expectAggregates(mock, "bad", 0, 0)
	expectAggregates(mock, "ok-2", 0, 0)

	page, err := repo.FindPage(context.Background(),
		contents.Scope{GroupID: "group-1"},
		reqDefaults(t))
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("Items = %d, want 2", len(page.Items))
	}
	if page.Items[0].ID != "ok-1" || page.Items[1].ID != "ok-2" {
		t.Errorf("item ids = %s, %s", page.Items[0].ID, page.Items[1].ID)
	}
	if page.NextCursor == nil {
		t.Error("NextCursor = nil, want cursor from last returned item")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// A page can lose every row and still advance the walk: the cursor is
// derived from the last fetched row, not the last survivor, so rows
// behind a bad page stay reachable. Only a page with no rows at all
// reads as exhaustion.
func TestContentRepoFindPageAllRowsCorruptAdvancesCursor(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	ids := []string{contentID(3), contentID(2), contentID(1)}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(contentRowColumns)
	for i, id := range ids {
		corrupt := postRowValues(id, base.Add(-time.Duration(i)*time.Minute))
		corrupt[8] = nil // title NULL on a POST row
		rows.AddRow(corrupt...)
		expectAggregates(mock, id, 0, 0)
	}

	mock.ExpectQuery(`WHERE c\.deleted_at IS NULL AND c\.group_id = \$1`).
		WithArgs("group-1", 20).
		WillReturnRows(rows)

	page, err := repo.FindPage(context.Background(),
		contents.Scope{GroupID: "group-1"},
		reqDefaults(t))
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("Items = %d, want 0", len(page.Items))
	}
	if page.NextCursor == nil {
		t.Fatal("NextCursor = nil: a fully-dropped page must not read as exhaustion")
	}
	boundary, err := pagination.DecodeCursor(*page.NextCursor, pagination.SortByID)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if want := ids[len(ids)-1]; boundary != want {
		t.Errorf("cursor boundary = %s, want %s", boundary, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Same guarantee when the drops come from failed count reads instead of
// corrupt rows.
func TestContentRepoFindPageAllCountsFailedAdvancesCursor(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	ids := []string{contentID(2), contentID(1)}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(contentRowColumns)
	for i, id := range ids {
		rows.AddRow(postRowValues(id, base.Add(-time.Duration(i)*time.Minute))...)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM likes`).
			WithArgs(id).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectQuery(`SELECT l\.id, l\.user_id`).
			WithArgs(id, contents.PreviewLimit).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM comments`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`SELECT cm\.id, cm\.owner_id`).
			WithArgs(id, contents.PreviewLimit).
			WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "text", "created_at"}))
	}

	mock.ExpectQuery(`WHERE c\.deleted_at IS NULL AND c\.group_id = \$1`).
		WithArgs("group-1", 20).
		WillReturnRows(rows)

	page, err := repo.FindPage(context.Background(),
		contents.Scope{GroupID: "group-1"},
		reqDefaults(t))
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("Items = %d, want 0", len(page.Items))
	}
	if page.NextCursor == nil {
		t.Fatal("NextCursor = nil: degraded pages must keep the walk moving")
	}
	boundary, err := pagination.DecodeCursor(*page.NextCursor, pagination.SortByID)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if want := ids[len(ids)-1]; boundary != want {
		t.Errorf("cursor boundary = %s, want %s", boundary, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestContentRepoFindPageEmpty(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE c\.deleted_at IS NULL AND c\.group_id = \$1`).
		WithArgs("group-1", 20).
		WillReturnRows(sqlmock.NewRows(contentRowColumns))

	page, err := repo.FindPage(context.Background(),
		contents.Scope{GroupID: "group-1"},
		reqDefaults(t))
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if len(page.Items) != 0 || page.NextCursor != nil {
		t.Errorf("page = %+v, want empty page with no cursor", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Walking 7 contents at limit 3 yields pages of 3, 3, and 1, and a
// fourth empty page signals the end. The cursor is exclusive: no content
// appears twice and none is skipped.
func TestContentRepoFindPageCursorWalk(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rowsFor := func(nums ...int) *sqlmock.Rows {
		rows := sqlmock.NewRows(contentRowColumns)
		for _, n := range nums {
			rows.AddRow(postRowValues(contentID(n), base.Add(time.Duration(n)*time.Minute))...)
		}
		return rows
	}

	mock.ExpectQuery(`WHERE c\.deleted_at IS NULL AND c\.group_id = \$1\s+ORDER`).
		WithArgs("group-1", 3).
		WillReturnRows(rowsFor(7, 6, 5))
	mock.ExpectQuery(`AND c\.id < \$2`).
		WithArgs("group-1", contentID(5), 3).
		WillReturnRows(rowsFor(4, 3, 2))
	mock.ExpectQuery(`AND c\.id < \$2`).
		WithArgs("group-1", contentID(2), 3).
		WillReturnRows(rowsFor(1))
	mock.ExpectQuery(`AND c\.id < \$2`).
		WithArgs("group-1", contentID(1), 3).
		WillReturnRows(rowsFor())
	for n := 1; n <= 7; n++ {
		expectAggregates(mock, contentID(n), 0, 0)
	}

	req := pagination.Request{SortField: pagination.SortByID, Direction: pagination.Desc, Limit: 3}
	var seen []string

	for pageNum := 1; ; pageNum++ {
		page, err := repo.FindPage(context.Background(),
			contents.Scope{GroupID: "group-1"}, req)
		if err != nil {
			t.Fatalf("page %d: FindPage() error = %v", pageNum, err)
		}

		if len(page.Items) == 0 {
			if page.NextCursor != nil {
				t.Error("empty page carries a cursor")
			}
			if pageNum != 4 {
				t.Errorf("collection exhausted on page %d, want 4", pageNum)
			}
			break
		}

		for _, item := range page.Items {
			seen = append(seen, item.ID)
		}
		if page.NextCursor == nil {
			t.Fatalf("page %d: non-empty page without cursor", pageNum)
		}
		req.Cursor = page.NextCursor
	}

	if len(seen) != 7 {
		t.Fatalf("walked %d contents, want 7", len(seen))
	}
	for i, id := range seen {
		if want := contentID(7 - i); id != want {
			t.Errorf("seen[%d] = %s, want %s", i, id, want)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestContentRepoUpdateNotFound(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE contents`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	now := time.Now().UTC()
	content := &contents.Content{
		ID:        "gone",
		GroupID:   "group-1",
		OwnerID:   "user-1",
		Type:      contents.TypePost,
		Post:      &contents.PostDetail{Title: "t", Text: "x"},
		UpdatedAt: &now,
	}
	err := repo.Update(context.Background(), content)
	if !errors.Is(err, contents.ErrContentNotFound) {
		t.Errorf("Update() error = %v, want ErrContentNotFound", err)
	}
}

func TestContentRepoDeleteIsSoft(t *testing.T) {
	repo, mock, db := newContentRepoMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE contents\s+SET deleted_at = NOW\(\)`).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "c1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// Update serializes every variant column, so a row updated under one
// discriminant cannot keep stale values from another.
func TestVariantColumnValuesClearOtherVariants(t *testing.T) {
	content := &contents.Content{
		Type:   contents.TypeBucket,
		Bucket: &contents.BucketDetail{Title: "Ride a balloon", Status: contents.BucketDone},
	}

	text, subText, title, status,
		originalPath, size, ext, mimeType, largePath,
		startAt, endAt, isAllDay := variantColumnValues(content)

	if !title.Valid || title.String != "Ride a balloon" {
		t.Errorf("title = %+v", title)
	}
	if !status.Valid || status.String != "DONE" {
		t.Errorf("status = %+v", status)
	}
	for name, valid := range map[string]bool{
		"text": text.Valid, "sub_text": subText.Valid,
		"original_path": originalPath.Valid, "size": size.Valid,
		"ext": ext.Valid, "mime_type": mimeType.Valid, "large_path": largePath.Valid,
		"start_datetime": startAt.Valid, "end_datetime": endAt.Valid, "is_all_day": isAllDay.Valid,
	} {
		if valid {
			t.Errorf("column %s is set for a bucket content, must serialize as NULL", name)
		}
	}
}
