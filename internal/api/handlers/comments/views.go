// Package comments provides HTTP handlers for the comment API.
package comments

import (
	"time"

	"Hearth/internal/core/comments"
	"Hearth/internal/core/pagination"
)

// commentView is the JSON shape of one comment.
type commentView struct {
	ID        string     `json:"id"`
	ContentID string     `json:"contentId"`
	Category  string     `json:"category"`
	OwnerID   *string    `json:"ownerId,omitempty"`
	Owner     *ownerView `json:"owner,omitempty"`
	Text      string     `json:"text"`
	SubText   *string    `json:"subText,omitempty"`
	Tags      []tagView  `json:"tags,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type ownerView struct {
	UserID           string  `json:"userId"`
	Nickname         string  `json:"nickname"`
	ProfileImagePath *string `json:"profileImagePath,omitempty"`
}

type tagView struct {
	MemberID  string `json:"memberId"`
	Positions []int  `json:"positions"`
}

type pageView struct {
	Items  []commentView `json:"items"`
	Cursor *string       `json:"cursor,omitempty"`
}

func toCommentView(c *comments.Comment) commentView {
	view := commentView{
		ID:        c.ID,
		ContentID: c.ContentID,
		Category:  string(c.Category),
		OwnerID:   c.OwnerID,
		Text:      c.Text,
		SubText:   c.SubText,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if c.Owner != nil {
		view.Owner = &ownerView{
			UserID:           c.Owner.UserID,
			Nickname:         c.Owner.Nickname,
			ProfileImagePath: c.Owner.ProfileImagePath,
		}
	}

	for _, tag := range c.Tags {
		view.Tags = append(view.Tags, tagView{
			MemberID:  tag.MemberID,
			Positions: tag.Positions,
		})
	}

	return view
}

func toPageView(page pagination.Page[*comments.Comment]) pageView {
	view := pageView{
		Items:  make([]commentView, 0, len(page.Items)),
		Cursor: page.NextCursor,
	}
	for _, item := range page.Items {
		view.Items = append(view.Items, toCommentView(item))
	}
	return view
}
