// Package repotest provides an in-memory stand-in for the Mongo repositories,
// mirroring their observable semantics closely enough to drive service and
// handler scenarios without a database.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/internal/apperr"
	"feed_workspace/internal/repository"
	"feed_workspace/model"
)

var (
	_ repository.PostRepository = (*Store)(nil)
	_ repository.FeedRepository = (*Store)(nil)
	_ repository.UserRepository = (*Store)(nil)
)

// Store implements repository.PostRepository, repository.FeedRepository and
// repository.UserRepository over maps. All reads and writes deep-copy, so a
// caller mutating a returned aggregate cannot leak into the store — the same
// boundary the load-mutate-save cycle gives the real repositories.
type Store struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]*model.Post
	users map[bson.ObjectID]model.User
}

func NewStore() *Store {
	return &Store{
		posts: map[bson.ObjectID]*model.Post{},
		users: map[bson.ObjectID]model.User{},
	}
}

func (s *Store) AddUser(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// Seed installs a post as-is, bypassing validation. Tests use it to arrange
// timestamps and flags directly.
func (s *Store) Seed(p model.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = clonePost(&p)
}

func (s *Store) Insert(_ context.Context, p *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	s.posts[p.ID] = clonePost(p)
	return nil
}

func (s *Store) FindByID(_ context.Context, id bson.ObjectID) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(id)
}

func (s *Store) Replace(_ context.Context, p *model.Post) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, err := s.live(p.ID)
	if err != nil {
		return nil, err
	}
	if cur.Version != p.Version {
		return nil, apperr.Conflict("post was modified concurrently")
	}
	cur.PostText = p.PostText
	cur.Images = append([]string{}, p.Images...)
	cur.Version++
	cur.UpdatedAt = time.Now().UTC()
	s.posts[cur.ID] = cur
	return clonePost(cur), nil
}

func (s *Store) ToggleLike(_ context.Context, postID bson.ObjectID, path model.LikePath, actorID bson.ObjectID, like bool) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.live(postID)
	if err != nil {
		return nil, err
	}
	target, err := p.Resolve(path)
	if err != nil {
		return nil, err
	}
	// $addToSet / $pull semantics: idempotent per element.
	if like != model.HasLiked(target, actorID) {
		model.ToggleLike(target, actorID)
	}
	s.posts[postID] = p
	return clonePost(p), nil
}

func (s *Store) PushComment(_ context.Context, postID bson.ObjectID, c model.Comment) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.live(postID)
	if err != nil {
		return nil, err
	}
	p.Comments = append(p.Comments, c)
	p.UpdatedAt = c.CreatedAt
	s.posts[postID] = p
	return clonePost(p), nil
}

func (s *Store) PushReply(_ context.Context, postID, commentID bson.ObjectID, r model.Reply) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.live(postID)
	if err != nil {
		return nil, err
	}
	c, ok := p.Comment(commentID)
	if !ok {
		return nil, apperr.NotFound("comment")
	}
	c.Replies = append(c.Replies, r)
	p.UpdatedAt = r.CreatedAt
	s.posts[postID] = p
	return clonePost(p), nil
}

func (s *Store) SetHidden(_ context.Context, postID bson.ObjectID, hidden bool) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.live(postID)
	if err != nil {
		return nil, err
	}
	p.IsHidden = hidden
	p.UpdatedAt = time.Now().UTC()
	s.posts[postID] = p
	return clonePost(p), nil
}

func (s *Store) SoftDelete(_ context.Context, postID bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.live(postID)
	if err != nil {
		return err
	}
	p.IsDeleted = true
	p.UpdatedAt = time.Now().UTC()
	s.posts[postID] = p
	return nil
}

func (s *Store) List(_ context.Context, q model.FeedQuery) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var items []model.Post
	for _, p := range s.posts {
		if !p.VisibleTo(q.ViewerID) {
			continue
		}
		if !q.AuthorID.IsZero() && p.UserID != q.AuthorID {
			continue
		}
		items = append(items, *clonePost(p))
	}
	sortPosts(items, q.Sort)

	start := q.Page * q.PageSize
	if start >= int64(len(items)) {
		return []model.Post{}, nil
	}
	end := start + q.PageSize
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end], nil
}

func (s *Store) Trending(_ context.Context, limit int64) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-24 * time.Hour)
	var items []model.Post
	for _, p := range s.posts {
		if p.IsDeleted || p.IsHidden || p.CreatedAt.Before(cutoff) {
			continue
		}
		items = append(items, *clonePost(p))
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		if a.LikeCount() != b.LikeCount() {
			return a.LikeCount() > b.LikeCount()
		}
		if a.CommentCount() != b.CommentCount() {
			return a.CommentCount() > b.CommentCount()
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	if int64(len(items)) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) PublicProfiles(_ context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.PublicProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[bson.ObjectID]model.PublicProfile, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u.Public()
		}
	}
	return out, nil
}

// live must be called with the lock held.
func (s *Store) live(id bson.ObjectID) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok || p.IsDeleted {
		return nil, apperr.NotFound("post")
	}
	return clonePost(p), nil
}

func sortPosts(items []model.Post, key string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := &items[i], &items[j]
		switch key {
		case model.SortLikes:
			if a.LikeCount() != b.LikeCount() {
				return a.LikeCount() > b.LikeCount()
			}
		case model.SortComments:
			if a.CommentCount() != b.CommentCount() {
				return a.CommentCount() > b.CommentCount()
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}

func clonePost(p *model.Post) *model.Post {
	cp := *p
	cp.Images = append([]string{}, p.Images...)
	cp.Likes = append([]bson.ObjectID{}, p.Likes...)
	cp.Comments = make([]model.Comment, len(p.Comments))
	for i := range p.Comments {
		c := p.Comments[i]
		c.Likes = append([]bson.ObjectID{}, c.Likes...)
		c.Replies = make([]model.Reply, len(p.Comments[i].Replies))
		for j := range p.Comments[i].Replies {
			r := p.Comments[i].Replies[j]
			r.Likes = append([]bson.ObjectID{}, r.Likes...)
			c.Replies[j] = r
		}
		cp.Comments[i] = c
	}
	return &cp
}
