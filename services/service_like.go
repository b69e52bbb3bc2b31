package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/internal/repository"
	"feed_workspace/model"
)

// LikeService is the toggle engine: one entry point for likes at every
// nesting depth, addressed by a LikePath.
type LikeService struct {
	posts repository.PostRepository
}

func NewLikeService(posts repository.PostRepository) *LikeService {
	return &LikeService{posts: posts}
}

// Toggle resolves the path inside the loaded aggregate, decides the direction
// from the actor's current membership and applies the matching atomic update.
// Toggling twice with the same actor restores the original state.
func (s *LikeService) Toggle(ctx context.Context, postID bson.ObjectID, path model.LikePath, actorID bson.ObjectID) (*model.Post, error) {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	target, err := p.Resolve(path)
	if err != nil {
		return nil, err
	}
	like := !model.HasLiked(target, actorID)
	return s.posts.ToggleLike(ctx, postID, path, actorID, like)
}
