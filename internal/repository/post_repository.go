package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"feed_workspace/internal/apperr"
	"feed_workspace/model"
)

// PostRepository is the persistence contract for the post aggregate. Liker-set
// and append mutations are atomic field-level operators so concurrent actors
// on the same post cannot erase each other's writes; whole-document updates go
// through a version CAS instead.
type PostRepository interface {
	Insert(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error)
	Replace(ctx context.Context, p *model.Post) (*model.Post, error)
	ToggleLike(ctx context.Context, postID bson.ObjectID, path model.LikePath, actorID bson.ObjectID, like bool) (*model.Post, error)
	PushComment(ctx context.Context, postID bson.ObjectID, c model.Comment) (*model.Post, error)
	PushReply(ctx context.Context, postID, commentID bson.ObjectID, r model.Reply) (*model.Post, error)
	SetHidden(ctx context.Context, postID bson.ObjectID, hidden bool) (*model.Post, error)
	SoftDelete(ctx context.Context, postID bson.ObjectID) error
}

type mongoPostRepo struct {
	col *mongo.Collection
	log *zap.Logger
}

func NewMongoPostRepo(db *mongo.Database, log *zap.Logger) PostRepository {
	return &mongoPostRepo{col: db.Collection("posts"), log: log}
}

// liveFilter matches a post that still exists from the API's point of view.
// Soft-deleted posts are gone for every caller, their author included.
func liveFilter(id bson.ObjectID) bson.M {
	return bson.M{"_id": id, "is_deleted": false}
}

func (r *mongoPostRepo) Insert(ctx context.Context, p *model.Post) error {
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return apperr.Unavailable(err)
	}
	if oid, ok := res.InsertedID.(bson.ObjectID); ok {
		p.ID = oid
	}
	r.log.Info("post created", zap.String("post_id", p.ID.Hex()))
	return nil
}

func (r *mongoPostRepo) FindByID(ctx context.Context, id bson.ObjectID) (*model.Post, error) {
	var p model.Post
	err := r.col.FindOne(ctx, liveFilter(id)).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("post")
	}
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return &p, nil
}

// Replace writes back mutable top-level fields under a version CAS. A CAS miss
// on a post that still exists surfaces as Conflict so the caller can reload
// and retry.
func (r *mongoPostRepo) Replace(ctx context.Context, p *model.Post) (*model.Post, error) {
	filter := bson.M{"_id": p.ID, "is_deleted": false, "version": p.Version}
	update := bson.M{
		"$set": bson.M{
			"post_text":  p.PostText,
			"images":     p.Images,
			"updated_at": time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	if res.MatchedCount == 0 {
		// Either the post is gone or someone got in between.
		if _, err := r.FindByID(ctx, p.ID); err != nil {
			return nil, err
		}
		return nil, apperr.Conflict("post was modified concurrently")
	}
	return r.FindByID(ctx, p.ID)
}

// ToggleLike applies $addToSet or $pull at the depth the path addresses,
// using arrayFilters for nested targets. Both operators are idempotent per
// element, so a raced duplicate request degrades to the pair identity rather
// than corrupting the set.
func (r *mongoPostRepo) ToggleLike(ctx context.Context, postID bson.ObjectID, path model.LikePath, actorID bson.ObjectID, like bool) (*model.Post, error) {
	op := "$pull"
	if like {
		op = "$addToSet"
	}

	field := "likes"
	var filters []any
	switch {
	case path.CommentID.IsZero():
	case path.ReplyID.IsZero():
		field = "comments.$[c].likes"
		filters = []any{bson.M{"c._id": path.CommentID}}
	default:
		field = "comments.$[c].replies.$[r].likes"
		filters = []any{
			bson.M{"c._id": path.CommentID},
			bson.M{"r._id": path.ReplyID},
		}
	}

	update := bson.M{op: bson.M{field: actorID}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if filters != nil {
		opts = opts.SetArrayFilters(filters)
	}

	var p model.Post
	err := r.col.FindOneAndUpdate(ctx, liveFilter(postID), update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("post")
	}
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return &p, nil
}

func (r *mongoPostRepo) PushComment(ctx context.Context, postID bson.ObjectID, c model.Comment) (*model.Post, error) {
	update := bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updated_at": c.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p model.Post
	err := r.col.FindOneAndUpdate(ctx, liveFilter(postID), update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("post")
	}
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return &p, nil
}

// PushReply matches the target comment in the query filter itself, so a
// comment miss never degrades into a silent no-op push.
func (r *mongoPostRepo) PushReply(ctx context.Context, postID, commentID bson.ObjectID, reply model.Reply) (*model.Post, error) {
	filter := liveFilter(postID)
	filter["comments._id"] = commentID
	update := bson.M{
		"$push": bson.M{"comments.$[c].replies": reply},
		"$set":  bson.M{"updated_at": reply.CreatedAt},
	}
	opts := options.UpdateOne().SetArrayFilters([]any{bson.M{"c._id": commentID}})

	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, postID); err != nil {
			return nil, err
		}
		return nil, apperr.NotFound("comment")
	}
	return r.FindByID(ctx, postID)
}

func (r *mongoPostRepo) SetHidden(ctx context.Context, postID bson.ObjectID, hidden bool) (*model.Post, error) {
	update := bson.M{"$set": bson.M{"is_hidden": hidden, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p model.Post
	err := r.col.FindOneAndUpdate(ctx, liveFilter(postID), update, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("post")
	}
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	return &p, nil
}

// SoftDelete is terminal: there is no transition back.
func (r *mongoPostRepo) SoftDelete(ctx context.Context, postID bson.ObjectID) error {
	update := bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, liveFilter(postID), update)
	if err != nil {
		return apperr.Unavailable(err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("post")
	}
	r.log.Info("post soft-deleted", zap.String("post_id", postID.Hex()))
	return nil
}
