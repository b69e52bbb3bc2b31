package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"feed_workspace/internal/apperr"
	"feed_workspace/internal/repository/repotest"
	"feed_workspace/model"
)

func seedThread(store *repotest.Store, author bson.ObjectID) (model.Post, model.Comment, model.Reply) {
	now := time.Now().UTC()
	r := model.NewReply(author, "reply", now)
	c := model.NewComment(author, "comment", now)
	c.Replies = append(c.Replies, r)
	p := model.Post{
		ID:        bson.NewObjectID(),
		UserID:    author,
		PostText:  "post",
		Images:    []string{},
		Likes:     []bson.ObjectID{},
		Comments:  []model.Comment{c},
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.Seed(p)
	return p, c, r
}

func TestLikeToggleAllDepths(t *testing.T) {
	store := repotest.NewStore()
	svc := NewLikeService(store)
	actor := bson.NewObjectID()
	p, c, r := seedThread(store, bson.NewObjectID())

	paths := []model.LikePath{
		{},
		{CommentID: c.ID},
		{CommentID: c.ID, ReplyID: r.ID},
	}
	for _, path := range paths {
		got, err := svc.Toggle(context.Background(), p.ID, path, actor)
		require.NoError(t, err)
		target, err := got.Resolve(path)
		require.NoError(t, err)
		assert.True(t, model.HasLiked(target, actor))

		got, err = svc.Toggle(context.Background(), p.ID, path, actor)
		require.NoError(t, err)
		target, err = got.Resolve(path)
		require.NoError(t, err)
		assert.False(t, model.HasLiked(target, actor))
		assert.Empty(t, target.LikerIDs())
	}
}

func TestLikeToggleIndependentActors(t *testing.T) {
	store := repotest.NewStore()
	svc := NewLikeService(store)
	p, c, _ := seedThread(store, bson.NewObjectID())
	a, b := bson.NewObjectID(), bson.NewObjectID()
	path := model.LikePath{CommentID: c.ID}

	_, err := svc.Toggle(context.Background(), p.ID, path, a)
	require.NoError(t, err)
	_, err = svc.Toggle(context.Background(), p.ID, path, b)
	require.NoError(t, err)

	// a unlikes, b's like survives
	got, err := svc.Toggle(context.Background(), p.ID, path, a)
	require.NoError(t, err)
	target, err := got.Resolve(path)
	require.NoError(t, err)
	assert.False(t, model.HasLiked(target, a))
	assert.True(t, model.HasLiked(target, b))
	assert.Len(t, target.LikerIDs(), 1)
}

func TestLikeToggleMissingTargets(t *testing.T) {
	store := repotest.NewStore()
	svc := NewLikeService(store)
	actor := bson.NewObjectID()
	p, c, _ := seedThread(store, bson.NewObjectID())

	_, err := svc.Toggle(context.Background(), bson.NewObjectID(), model.LikePath{}, actor)
	assert.True(t, apperr.IsNotFound(err, "post"))

	_, err = svc.Toggle(context.Background(), p.ID, model.LikePath{CommentID: bson.NewObjectID()}, actor)
	assert.True(t, apperr.IsNotFound(err, "comment"))

	_, err = svc.Toggle(context.Background(), p.ID, model.LikePath{CommentID: c.ID, ReplyID: bson.NewObjectID()}, actor)
	assert.True(t, apperr.IsNotFound(err, "reply"))
}

func TestLikeToggleOnDeletedPost(t *testing.T) {
	store := repotest.NewStore()
	svc := NewLikeService(store)
	actor := bson.NewObjectID()
	p, _, _ := seedThread(store, bson.NewObjectID())

	require.NoError(t, store.SoftDelete(context.Background(), p.ID))

	_, err := svc.Toggle(context.Background(), p.ID, model.LikePath{}, actor)
	assert.True(t, apperr.IsNotFound(err, "post"))
}
