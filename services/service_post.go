package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"feed_workspace/dto"
	"feed_workspace/internal/apperr"
	"feed_workspace/internal/repository"
	"feed_workspace/model"
)

// PostService owns the post lifecycle: create, read (visibility-gated),
// update, hide toggle and terminal soft-delete.
type PostService struct {
	posts    repository.PostRepository
	validate *validator.Validate
	log      *zap.Logger
}

func NewPostService(posts repository.PostRepository, log *zap.Logger) *PostService {
	return &PostService{
		posts:    posts,
		validate: validator.New(),
		log:      log,
	}
}

func (s *PostService) Create(ctx context.Context, authorID bson.ObjectID, body dto.CreatePostDTO) (*model.Post, error) {
	if err := s.validate.Struct(body); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	text := strings.TrimSpace(body.PostText)
	if err := model.ValidatePostBody(text, body.Images); err != nil {
		return nil, err
	}

	images := body.Images
	if images == nil {
		images = []string{}
	}
	now := time.Now().UTC()
	p := &model.Post{
		UserID:    authorID,
		PostText:  text,
		Images:    images,
		Likes:     []bson.ObjectID{},
		Comments:  []model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.posts.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get applies the visibility predicate: a post the viewer may not see answers
// NotFound, indistinguishable from a post that never existed.
func (s *PostService) Get(ctx context.Context, postID, viewerID bson.ObjectID) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !p.VisibleTo(viewerID) {
		return nil, apperr.NotFound("post")
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, postID, authorID bson.ObjectID, body dto.UpdatePostDTO) (*model.Post, error) {
	if err := s.validate.Struct(body); err != nil {
		return nil, apperr.Validation(err.Error())
	}
	text := strings.TrimSpace(body.PostText)
	if err := model.ValidatePostBody(text, body.Images); err != nil {
		return nil, err
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != authorID {
		return nil, apperr.Forbidden("only the author can update a post")
	}

	p.PostText = text
	p.Images = body.Images
	if p.Images == nil {
		p.Images = []string{}
	}
	return s.posts.Replace(ctx, p)
}

// ToggleHidden flips the author-controlled visibility flag.
func (s *PostService) ToggleHidden(ctx context.Context, postID, authorID bson.ObjectID) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.UserID != authorID {
		return nil, apperr.Forbidden("only the author can hide a post")
	}
	return s.posts.SetHidden(ctx, postID, !p.IsHidden)
}

func (s *PostService) Delete(ctx context.Context, postID, authorID bson.ObjectID) error {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != authorID {
		return apperr.Forbidden("only the author can delete a post")
	}
	return s.posts.SoftDelete(ctx, postID)
}
