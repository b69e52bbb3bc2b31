package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/configs"
	"feed_workspace/dto"
	"feed_workspace/internal/apperr"
	"feed_workspace/internal/repository"
	"feed_workspace/model"
)

// FeedService assembles visibility-filtered, paginated feeds with every
// post's comments, replies and author profiles materialized.
type FeedService struct {
	feed  repository.FeedRepository
	users repository.UserRepository
}

func NewFeedService(feed repository.FeedRepository, users repository.UserRepository) *FeedService {
	return &FeedService{feed: feed, users: users}
}

func (s *FeedService) List(ctx context.Context, q model.FeedQuery) (dto.FeedResponse, error) {
	switch q.Sort {
	case "":
		q.Sort = model.SortRecency
	case model.SortRecency, model.SortLikes, model.SortComments:
	default:
		return dto.FeedResponse{}, apperr.Validation("sort must be recency, likes or comments")
	}
	if q.Page < 0 {
		q.Page = 0
	}
	if q.PageSize <= 0 {
		q.PageSize = configs.DefaultLimitFeed
	}
	if q.PageSize > configs.MaxLimitFeed {
		q.PageSize = configs.MaxLimitFeed
	}

	posts, err := s.feed.List(ctx, q)
	if err != nil {
		return dto.FeedResponse{}, err
	}
	views, err := s.materialize(ctx, posts)
	if err != nil {
		return dto.FeedResponse{}, err
	}
	return dto.FeedResponse{
		Posts:    views,
		Page:     q.Page,
		PageSize: q.PageSize,
		HasMore:  int64(len(views)) == q.PageSize,
	}, nil
}

func (s *FeedService) Trending(ctx context.Context, limit int64) (dto.TrendingResponse, error) {
	if limit <= 0 {
		limit = configs.DefaultLimitTrending
	}
	if limit > configs.MaxLimitTrending {
		limit = configs.MaxLimitTrending
	}
	posts, err := s.feed.Trending(ctx, limit)
	if err != nil {
		return dto.TrendingResponse{}, err
	}
	views, err := s.materialize(ctx, posts)
	if err != nil {
		return dto.TrendingResponse{}, err
	}
	return dto.TrendingResponse{Posts: views}, nil
}

// materialize resolves every author id in the page (posts, comments, replies)
// with one batched lookup, then projects the views.
func (s *FeedService) materialize(ctx context.Context, posts []model.Post) ([]dto.PostView, error) {
	profiles, err := s.users.PublicProfiles(ctx, collectAuthorIDs(posts))
	if err != nil {
		return nil, err
	}
	views := make([]dto.PostView, 0, len(posts))
	for i := range posts {
		views = append(views, dto.NewPostView(&posts[i], profiles))
	}
	return views, nil
}

func collectAuthorIDs(posts []model.Post) []bson.ObjectID {
	seen := map[bson.ObjectID]struct{}{}
	var ids []bson.ObjectID
	add := func(id bson.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for i := range posts {
		add(posts[i].UserID)
		for j := range posts[i].Comments {
			c := &posts[i].Comments[j]
			add(c.UserID)
			for k := range c.Replies {
				add(c.Replies[k].UserID)
			}
		}
	}
	return ids
}
