package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/internal/apperr"
	"feed_workspace/internal/repository"
	"feed_workspace/model"
)

// CommentService is the nested mutation engine: append-only comment and reply
// creation against an existing, non-deleted post. There is no delete path for
// either; only posts soft-delete.
type CommentService struct {
	posts repository.PostRepository
}

func NewCommentService(posts repository.PostRepository) *CommentService {
	return &CommentService{posts: posts}
}

func (s *CommentService) AddComment(ctx context.Context, postID, authorID bson.ObjectID, text string) (*model.Post, error) {
	text = strings.TrimSpace(text)
	if err := model.ValidateCommentText(text); err != nil {
		return nil, err
	}
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.posts.PushComment(ctx, postID, model.NewComment(authorID, text, time.Now().UTC()))
}

// AddReply validates the target comment exists before mutating; a miss leaves
// the post untouched.
func (s *CommentService) AddReply(ctx context.Context, postID, commentID, authorID bson.ObjectID, text string) (*model.Post, error) {
	text = strings.TrimSpace(text)
	if err := model.ValidateReplyText(text); err != nil {
		return nil, err
	}
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if _, ok := p.Comment(commentID); !ok {
		return nil, apperr.NotFound("comment")
	}
	return s.posts.PushReply(ctx, postID, commentID, model.NewReply(authorID, text, time.Now().UTC()))
}
