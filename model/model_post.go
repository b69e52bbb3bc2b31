package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/internal/apperr"
)

const (
	MaxPostTextLen = 500
	MaxPostImages  = 5
)

var imageURLPattern = regexp.MustCompile(`^https?://\S+$`)

// Post is the aggregate root. Comments and replies are embedded and only
// addressable through it; every mutation loads the post, locates the nested
// entity and persists against the same document.
type Post struct {
	ID        bson.ObjectID   `json:"id"        bson:"_id,omitempty"`
	UserID    bson.ObjectID   `json:"userId"    bson:"user_id"`
	PostText  string          `json:"postText"  bson:"post_text"`
	Images    []string        `json:"images"    bson:"images"`
	Likes     []bson.ObjectID `json:"likes"     bson:"likes"`
	Comments  []Comment       `json:"comments"  bson:"comments"`
	IsHidden  bool            `json:"isHidden"  bson:"is_hidden"`
	IsDeleted bool            `json:"isDeleted" bson:"is_deleted"`
	Version   int64           `json:"-"         bson:"version"`
	CreatedAt time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" bson:"updated_at"`
}

// LikeCount is derived from the likes set, never stored on its own.
func (p *Post) LikeCount() int { return len(p.Likes) }

func (p *Post) CommentCount() int { return len(p.Comments) }

// Comment finds an embedded comment by id. Linear scan; the collections stay
// small and bounded.
func (p *Post) Comment(id bson.ObjectID) (*Comment, bool) {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i], true
		}
	}
	return nil, false
}

// VisibleTo is the single visibility predicate. A deleted post is invisible to
// everyone including its author; a hidden post to everyone but its author. The
// zero ObjectID stands for an anonymous viewer.
func (p *Post) VisibleTo(viewerID bson.ObjectID) bool {
	if p.IsDeleted {
		return false
	}
	if p.IsHidden {
		return !viewerID.IsZero() && viewerID == p.UserID
	}
	return true
}

// ValidatePostBody enforces the creation invariant: non-empty trimmed text or
// at least one image, within the length and count caps.
func ValidatePostBody(text string, images []string) error {
	if strings.TrimSpace(text) == "" && len(images) == 0 {
		return apperr.Validation("post needs text or at least one image")
	}
	if len(text) > MaxPostTextLen {
		return apperr.Validation(fmt.Sprintf("post text exceeds %d characters", MaxPostTextLen))
	}
	if len(images) > MaxPostImages {
		return apperr.Validation(fmt.Sprintf("at most %d images per post", MaxPostImages))
	}
	for _, u := range images {
		if !imageURLPattern.MatchString(u) {
			return apperr.Validation("image url must be http(s)")
		}
	}
	return nil
}

// Feed sort keys.
const (
	SortRecency  = "recency"
	SortLikes    = "likes"
	SortComments = "comments"
)

// FeedQuery is the filter/sort/page window handed to the feed repository.
// AuthorID zero means no author restriction, ViewerID zero means anonymous.
type FeedQuery struct {
	ViewerID bson.ObjectID
	AuthorID bson.ObjectID
	Sort     string
	Page     int64
	PageSize int64
}
