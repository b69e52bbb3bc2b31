package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/internal/apperr"
)

// Likeable is the shared capability of Post, Comment and Reply: an identifier
// plus a duplicate-free set of liker ids.
type Likeable interface {
	LikerIDs() []bson.ObjectID
	setLikerIDs([]bson.ObjectID)
}

func (p *Post) LikerIDs() []bson.ObjectID { return p.Likes }

func (p *Post) setLikerIDs(ids []bson.ObjectID) { p.Likes = ids }

func (c *Comment) LikerIDs() []bson.ObjectID { return c.Likes }

func (c *Comment) setLikerIDs(ids []bson.ObjectID) { c.Likes = ids }

func (r *Reply) LikerIDs() []bson.ObjectID { return r.Likes }

func (r *Reply) setLikerIDs(ids []bson.ObjectID) { r.Likes = ids }

// HasLiked reports whether actor is in the liker set.
func HasLiked(l Likeable, actorID bson.ObjectID) bool {
	for _, id := range l.LikerIDs() {
		if id == actorID {
			return true
		}
	}
	return false
}

// ToggleLike removes actor from the liker set if present, adds it otherwise,
// and reports the resulting state. Applying it twice with the same actor is
// the identity.
func ToggleLike(l Likeable, actorID bson.ObjectID) bool {
	likes := l.LikerIDs()
	for i, id := range likes {
		if id == actorID {
			l.setLikerIDs(append(likes[:i:i], likes[i+1:]...))
			return false
		}
	}
	l.setLikerIDs(append(likes, actorID))
	return true
}

// LikePath addresses a likeable inside a post aggregate: both ids zero means
// the post itself, CommentID alone a comment, both a reply.
type LikePath struct {
	CommentID bson.ObjectID
	ReplyID   bson.ObjectID
}

// Resolve walks the path inside the aggregate, failing with a NotFound naming
// the depth at which resolution stopped.
func (p *Post) Resolve(path LikePath) (Likeable, error) {
	if path.CommentID.IsZero() {
		return p, nil
	}
	c, ok := p.Comment(path.CommentID)
	if !ok {
		return nil, apperr.NotFound("comment")
	}
	if path.ReplyID.IsZero() {
		return c, nil
	}
	r, ok := c.Reply(path.ReplyID)
	if !ok {
		return nil, apperr.NotFound("reply")
	}
	return r, nil
}
