package comments

import "testing"

func strPtr(s string) *string { return &s }

func TestCommentValidate(t *testing.T) {
	tests := []struct {
		name    string
		comment Comment
		wantErr bool
	}{
		{
			name: "valid user comment",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				OwnerID:   strPtr("user-1"),
				Text:      "count me in",
			},
		},
		{
			name: "valid user comment with tags",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				OwnerID:   strPtr("user-1"),
				Text:      "see you there @ann",
				Tags:      []Tag{{MemberID: "member-2", Positions: []int{13}}},
			},
		},
		{
			name: "valid system comment",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategorySystem,
				Text:      "ann joined the group",
				SubText:   strPtr("via invite link"),
			},
		},
		{
			name: "missing content id",
			comment: Comment{
				Category: CategoryUser,
				OwnerID:  strPtr("user-1"),
				Text:     "hi",
			},
			wantErr: true,
		},
		{
			name: "missing text",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				OwnerID:   strPtr("user-1"),
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			comment: Comment{
				ContentID: "content-1",
				Category:  "BOT",
				Text:      "hi",
			},
			wantErr: true,
		},
		{
			name: "user comment without owner",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				Text:      "hi",
			},
			wantErr: true,
		},
		{
			name: "user comment with sub text",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				OwnerID:   strPtr("user-1"),
				Text:      "hi",
				SubText:   strPtr("extra"),
			},
			wantErr: true,
		},
		{
			name: "system comment with owner",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategorySystem,
				OwnerID:   strPtr("user-1"),
				Text:      "hi",
			},
			wantErr: true,
		},
		{
			name: "system comment with tags",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategorySystem,
				Text:      "hi",
				Tags:      []Tag{{MemberID: "member-1", Positions: []int{0}}},
			},
			wantErr: true,
		},
		{
			name: "tag position past end of text",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				OwnerID:   strPtr("user-1"),
				Text:      "short",
				Tags:      []Tag{{MemberID: "member-1", Positions: []int{5}}},
			},
			wantErr: true,
		},
		{
			name: "tag position counts runes not bytes",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				OwnerID:   strPtr("user-1"),
				Text:      "héllo",
				Tags:      []Tag{{MemberID: "member-1", Positions: []int{4}}},
			},
		},
		{
			name: "tag without member id",
			comment: Comment{
				ContentID: "content-1",
				Category:  CategoryUser,
				OwnerID:   strPtr("user-1"),
				Text:      "hi there",
				Tags:      []Tag{{Positions: []int{0}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.comment.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
