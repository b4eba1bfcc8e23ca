package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/users"
)

func userCommentRow(id string) commentRow {
	return commentRow{
		ID:        id,
		ContentID: "content-1",
		Category:  "USER",
		OwnerID:   ns("user-1"),
		Text:      "count me in",
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func systemCommentRow(id string) commentRow {
	return commentRow{
		ID:        id,
		ContentID: "content-1",
		Category:  "SYSTEM",
		Text:      "ann joined the group",
		SubText:   ns("via invite link"),
		CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestParsePositions(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []int
		wantErr bool
	}{
		{name: "empty string", in: "", want: nil},
		{name: "single position", in: "3", want: []int{3}},
		{name: "ordered list", in: "3,17,42", want: []int{3, 17, 42}},
		{name: "order is preserved", in: "42,3", want: []int{42, 3}},
		{name: "whitespace tolerated", in: " 3, 17 ", want: []int{3, 17}},
		{name: "non-numeric", in: "3,x", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePositions(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePositions(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parsePositions(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parsePositions(%q)[%d] = %d, want %d", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReconstructComment(t *testing.T) {
	t.Run("user comment with owner and tags", func(t *testing.T) {
		owner := &users.Summary{UserID: "user-1", Nickname: "ann"}
		tags := []rawTag{
			{CommentID: "cm1", MemberID: "member-2", Positions: "5,12"},
		}

		comment, err := reconstructComment(userCommentRow("cm1"), tags, owner, discardLogger())
		if err != nil {
			t.Fatalf("reconstructComment() error = %v", err)
		}
		if comment.Category != comments.CategoryUser {
			t.Errorf("Category = %s", comment.Category)
		}
		if comment.Owner == nil || comment.Owner.Nickname != "ann" {
			t.Error("owner summary not attached")
		}
		if len(comment.Tags) != 1 || comment.Tags[0].MemberID != "member-2" {
			t.Fatalf("Tags = %+v", comment.Tags)
		}
		if got := comment.Tags[0].Positions; len(got) != 2 || got[0] != 5 || got[1] != 12 {
			t.Errorf("Positions = %v", got)
		}
	})

	t.Run("system comment", func(t *testing.T) {
		comment, err := reconstructComment(systemCommentRow("cm2"), nil, nil, discardLogger())
		if err != nil {
			t.Fatalf("reconstructComment() error = %v", err)
		}
		if comment.OwnerID != nil || comment.Owner != nil {
			t.Error("system comment carries an owner")
		}
		if comment.SubText == nil || *comment.SubText != "via invite link" {
			t.Error("SubText not carried through")
		}
	})

	t.Run("malformed tag drops the tag not the comment", func(t *testing.T) {
		tags := []rawTag{
			{CommentID: "cm3", MemberID: "member-1", Positions: "oops"},
			{CommentID: "cm3", MemberID: "member-2", Positions: "4"},
		}

		owner := &users.Summary{UserID: "user-1"}
		comment, err := reconstructComment(userCommentRow("cm3"), tags, owner, discardLogger())
		if err != nil {
			t.Fatalf("reconstructComment() error = %v", err)
		}
		if len(comment.Tags) != 1 || comment.Tags[0].MemberID != "member-2" {
			t.Errorf("Tags = %+v, want only the well-formed tag", comment.Tags)
		}
	})
}

func TestReconstructCommentRejections(t *testing.T) {
	tests := []struct {
		name string
		row  commentRow
	}{
		{
			name: "unknown category",
			row: func() commentRow {
				row := userCommentRow("x1")
				row.Category = "BOT"
				return row
			}(),
		},
		{
			name: "empty text",
			row: func() commentRow {
				row := userCommentRow("x2")
				row.Text = ""
				return row
			}(),
		},
		{
			name: "user comment without owner",
			row: func() commentRow {
				row := userCommentRow("x3")
				row.OwnerID = sql.NullString{}
				return row
			}(),
		},
		{
			name: "user comment with sub text",
			row: func() commentRow {
				row := userCommentRow("x4")
				row.SubText = ns("extra")
				return row
			}(),
		},
		{
			name: "system comment with owner",
			row: func() commentRow {
				row := systemCommentRow("x5")
				row.OwnerID = ns("user-1")
				return row
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reconstructComment(tt.row, nil, nil, discardLogger())
			if err == nil {
				t.Fatal("reconstructComment() succeeded, want rejection")
			}
			var re *comments.ReconstructionError
			if !errors.As(err, &re) {
				t.Fatalf("error %T is not a ReconstructionError", err)
			}
			if re.RowID != tt.row.ID {
				t.Errorf("RowID = %s, want %s", re.RowID, tt.row.ID)
			}
		})
	}
}

func TestReconstructCommentsPartialFailure(t *testing.T) {
	corrupt := userCommentRow("bad-1")
	corrupt.OwnerID = sql.NullString{}

	rows := []commentRow{
		userCommentRow("ok-1"),
		corrupt,
		systemCommentRow("ok-2"),
	}
	owners := map[string]users.Summary{"user-1": {UserID: "user-1", Nickname: "ann"}}

	successes, failures := reconstructComments(rows, map[string][]rawTag{}, owners, discardLogger())

	if len(successes) != 2 {
		t.Errorf("successes = %d, want 2", len(successes))
	}
	if len(failures) != 1 || failures[0].RowID != "bad-1" {
		t.Errorf("failures = %+v, want the single corrupt row", failures)
	}
}
