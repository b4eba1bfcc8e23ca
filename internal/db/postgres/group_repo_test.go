package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"Hearth/internal/core/groups"
	"Hearth/internal/core/pagination"
)

var memberColumns = []string{"id", "group_id", "user_id", "nickname", "joined_at", "deleted_at"}

// memberID mints a deterministic UUID-shaped id whose lexicographic
// order follows n.
func memberID(n int) string {
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", n)
}

func newGroupRepoMock(t *testing.T) (groups.Repository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	return NewGroupRepository(db), mock, db
}

// Walking 7 members at limit 3 yields pages of 3, 3, and 1, and a
// fourth empty page signals the end. The cursor is exclusive: no member
// appears twice and none is skipped.
func TestFindMemberPageCursorWalk(t *testing.T) {
	repo, mock, db := newGroupRepoMock(t)
	defer db.Close()

	joined := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	addMember := func(rows *sqlmock.Rows, n int) *sqlmock.Rows {
		return rows.AddRow(memberID(n), "group-1", fmt.Sprintf("user-%d", n), fmt.Sprintf("nick-%d", n), joined, nil)
	}

	firstPage := sqlmock.NewRows(memberColumns)
	for _, n := range []int{7, 6, 5} {
		addMember(firstPage, n)
	}
	secondPage := sqlmock.NewRows(memberColumns)
	for _, n := range []int{4, 3, 2} {
		addMember(secondPage, n)
	}
	thirdPage := addMember(sqlmock.NewRows(memberColumns), 1)

	mock.ExpectQuery(`WHERE m\.deleted_at IS NULL AND m\.group_id = \$1`).
		WithArgs("group-1", 3).
		WillReturnRows(firstPage)
	mock.ExpectQuery(`AND m\.id < \$2`).
		WithArgs("group-1", memberID(5), 3).
		WillReturnRows(secondPage)
	mock.ExpectQuery(`AND m\.id < \$2`).
		WithArgs("group-1", memberID(2), 3).
		WillReturnRows(thirdPage)
	mock.ExpectQuery(`AND m\.id < \$2`).
		WithArgs("group-1", memberID(1), 3).
		WillReturnRows(sqlmock.NewRows(memberColumns))

	req := pagination.Request{SortField: pagination.SortByID, Direction: pagination.Desc, Limit: 3}
	var seen []string

	for pageNum := 1; ; pageNum++ {
		page, err := repo.FindMemberPage(context.Background(), "group-1", req)
		if err != nil {
			t.Fatalf("page %d: FindMemberPage() error = %v", pageNum, err)
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

		for _, member := range page.Items {
			seen = append(seen, member.ID)
		}
		if page.NextCursor == nil {
			t.Fatalf("page %d: non-empty page without cursor", pageNum)
		}
		req.Cursor = page.NextCursor
	}

	if len(seen) != 7 {
		t.Fatalf("walked %d members, want 7", len(seen))
	}
	for i, id := range seen {
		if want := memberID(7 - i); id != want {
			t.Errorf("seen[%d] = %s, want %s", i, id, want)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGroupRepoGetByIDAbsent(t *testing.T) {
	repo, mock, db := newGroupRepoMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE g\.id = \$1 AND g\.deleted_at IS NULL`).
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	group, err := repo.GetByID(context.Background(), "nope")
	if err != nil || group != nil {
		t.Errorf("GetByID() = %v, %v; want nil, nil", group, err)
	}
}

func TestCreateMemberDuplicate(t *testing.T) {
	repo, mock, db := newGroupRepoMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO group_members`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "idx_group_members_group_user"`))

	member := &groups.Member{ID: memberID(1), GroupID: "group-1", UserID: "user-1", Nickname: "ann"}
	if err := repo.CreateMember(context.Background(), member); !errors.Is(err, groups.ErrAlreadyMember) {
		t.Errorf("CreateMember() error = %v, want ErrAlreadyMember", err)
	}
}
