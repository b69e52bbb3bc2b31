package model

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/internal/apperr"
)

const (
	MaxCommentTextLen = 500
	MaxReplyTextLen   = 200
)

// Comment lives inside its post's comments array, in insertion order.
type Comment struct {
	ID        bson.ObjectID   `json:"id"        bson:"_id"`
	UserID    bson.ObjectID   `json:"userId"    bson:"user_id"`
	Text      string          `json:"text"      bson:"text"`
	Likes     []bson.ObjectID `json:"likes"     bson:"likes"`
	Replies   []Reply         `json:"replies"   bson:"replies"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updated_at"`
}

func (c *Comment) LikeCount() int { return len(c.Likes) }

func (c *Comment) ReplyCount() int { return len(c.Replies) }

// Reply finds an embedded reply by id.
func (c *Comment) Reply(id bson.ObjectID) (*Reply, bool) {
	for i := range c.Replies {
		if c.Replies[i].ID == id {
			return &c.Replies[i], true
		}
	}
	return nil, false
}

// Reply is the leaf of the aggregate; it has no children and no lifecycle of
// its own.
type Reply struct {
	ID        bson.ObjectID   `json:"id"        bson:"_id"`
	UserID    bson.ObjectID   `json:"userId"    bson:"user_id"`
	Text      string          `json:"text"      bson:"text"`
	Likes     []bson.ObjectID `json:"likes"     bson:"likes"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updated_at"`
}

func (r *Reply) LikeCount() int { return len(r.Likes) }

// NewComment builds a comment ready to append: fresh id, empty liker set,
// empty reply sequence.
func NewComment(authorID bson.ObjectID, text string, now time.Time) Comment {
	return Comment{
		ID:        bson.NewObjectID(),
		UserID:    authorID,
		Text:      text,
		Likes:     []bson.ObjectID{},
		Replies:   []Reply{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewReply(authorID bson.ObjectID, text string, now time.Time) Reply {
	return Reply{
		ID:        bson.NewObjectID(),
		UserID:    authorID,
		Text:      text,
		Likes:     []bson.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ValidateCommentText(text string) error {
	return validateText(text, MaxCommentTextLen, "comment")
}

func ValidateReplyText(text string) error {
	return validateText(text, MaxReplyTextLen, "reply")
}

func validateText(text string, maxLen int, what string) error {
	if strings.TrimSpace(text) == "" {
		return apperr.Validation(what + " text is required")
	}
	if len(text) > maxLen {
		return apperr.Validation(fmt.Sprintf("%s text exceeds %d characters", what, maxLen))
	}
	return nil
}
