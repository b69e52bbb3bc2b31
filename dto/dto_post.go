package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/model"
)

// ===== Requests =====

type CreatePostDTO struct {
	PostText string   `json:"postText" validate:"max=500"`
	Images   []string `json:"images"   validate:"max=5,dive,http_url"`
}

type UpdatePostDTO struct {
	PostText string   `json:"postText" validate:"max=500"`
	Images   []string `json:"images"   validate:"max=5,dive,http_url"`
}

// ===== Responses =====

// PostView is the materialized aggregate returned by every post-producing
// endpoint. Counts are computed from the embedded collections at projection
// time; Author is only attached on feed paths where profiles were resolved.
type PostView struct {
	ID           string               `json:"id"`
	UserID       string               `json:"userId"`
	Author       *model.PublicProfile `json:"author,omitempty"`
	PostText     string               `json:"postText"`
	Images       []string             `json:"images"`
	LikeCount    int                  `json:"likeCount"`
	CommentCount int                  `json:"commentCount"`
	IsHidden     bool                 `json:"isHidden"`
	Comments     []CommentView        `json:"comments"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

type CommentView struct {
	ID         string               `json:"id"`
	UserID     string               `json:"userId"`
	Author     *model.PublicProfile `json:"author,omitempty"`
	Text       string               `json:"text"`
	LikeCount  int                  `json:"likeCount"`
	ReplyCount int                  `json:"replyCount"`
	Replies    []ReplyView          `json:"replies"`
	CreatedAt  time.Time            `json:"createdAt"`
}

type ReplyView struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Author    *model.PublicProfile `json:"author,omitempty"`
	Text      string               `json:"text"`
	LikeCount int                  `json:"likeCount"`
	CreatedAt time.Time            `json:"createdAt"`
}

// NewPostView projects an aggregate, attaching whatever profiles the caller
// resolved. A nil map is fine for mutation responses.
func NewPostView(p *model.Post, profiles map[bson.ObjectID]model.PublicProfile) PostView {
	comments := make([]CommentView, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, newCommentView(&p.Comments[i], profiles))
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return PostView{
		ID:           p.ID.Hex(),
		UserID:       p.UserID.Hex(),
		Author:       profileFor(p.UserID, profiles),
		PostText:     p.PostText,
		Images:       images,
		LikeCount:    p.LikeCount(),
		CommentCount: p.CommentCount(),
		IsHidden:     p.IsHidden,
		Comments:     comments,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func newCommentView(c *model.Comment, profiles map[bson.ObjectID]model.PublicProfile) CommentView {
	replies := make([]ReplyView, 0, len(c.Replies))
	for i := range c.Replies {
		r := &c.Replies[i]
		replies = append(replies, ReplyView{
			ID:        r.ID.Hex(),
			UserID:    r.UserID.Hex(),
			Author:    profileFor(r.UserID, profiles),
			Text:      r.Text,
			LikeCount: r.LikeCount(),
			CreatedAt: r.CreatedAt,
		})
	}
	return CommentView{
		ID:         c.ID.Hex(),
		UserID:     c.UserID.Hex(),
		Author:     profileFor(c.UserID, profiles),
		Text:       c.Text,
		LikeCount:  c.LikeCount(),
		ReplyCount: c.ReplyCount(),
		Replies:    replies,
		CreatedAt:  c.CreatedAt,
	}
}

func profileFor(id bson.ObjectID, profiles map[bson.ObjectID]model.PublicProfile) *model.PublicProfile {
	if profiles == nil {
		return nil
	}
	if p, ok := profiles[id]; ok {
		return &p
	}
	return nil
}
