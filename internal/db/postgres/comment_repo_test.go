package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/pagination"
)

var commentRowColumns = []string{
	"id", "content_id", "category", "owner_id",
	"text", "sub_text",
	"created_at", "updated_at", "deleted_at",
}

func newCommentRepoMock(t *testing.T) (comments.Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	mock.MatchExpectationsInOrder(false)
	return NewCommentRepository(db, discardLogger()), mock, db
}

// A thread page whose rows are all corrupt still advances the cursor:
// it comes from the last fetched row, so a walker keeps going and finds
// the intact comments behind the bad page.
func TestCommentRepoFindPageAllRowsCorruptAdvancesCursor(t *testing.T) {
	repo, mock, db := newCommentRepoMock(t)
	defer db.Close()

	ids := []string{
		"00000000-0000-7000-8000-000000000002",
		"00000000-0000-7000-8000-000000000001",
	}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(commentRowColumns)
	for i, id := range ids {
		// USER comments without an owner fail reconstruction.
		rows.AddRow([]driver.Value{
			id, "content-1", "USER", nil,
			"hello", nil,
			base.Add(-time.Duration(i) * time.Minute), nil, nil,
		}...)
	}

	mock.ExpectQuery(`WHERE cm\.deleted_at IS NULL AND cm\.content_id = \$1`).
		WithArgs("content-1", 20).
		WillReturnRows(rows)
	mock.ExpectQuery(`FROM comment_tags t`).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id", "member_id", "positions"}))

	page, err := repo.FindPage(context.Background(),
		comments.Scope{ContentID: "content-1"},
		pagination.Request{}.Normalize())
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
