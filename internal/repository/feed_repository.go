package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"feed_workspace/internal/apperr"
	"feed_workspace/model"
)

// ===== MongoDB stage keyword constants =====
const (
	StageMatch     = "$match"
	StageAddFields = "$addFields"
	StageSort      = "$sort"
	StageSkip      = "$skip"
	StageLimit     = "$limit"
)

// TrendingWindow restricts the trending feed to recent posts.
const TrendingWindow = 24 * time.Hour

// VisibilityFilter is the single source for "which posts may this viewer see"
// across every read path. Deleted posts are excluded for everyone; hidden
// posts for everyone but the author. The zero viewer id is anonymous and sees
// only unhidden posts. Keep this and model.Post.VisibleTo in agreement.
func VisibilityFilter(viewerID bson.ObjectID) bson.M {
	if viewerID.IsZero() {
		return bson.M{"is_deleted": false, "is_hidden": false}
	}
	return bson.M{
		"is_deleted": false,
		"$or": []bson.M{
			{"is_hidden": false},
			{"user_id": viewerID},
		},
	}
}

// BuildFeedFilter composes visibility with the optional author restriction.
func BuildFeedFilter(q model.FeedQuery) bson.M {
	and := []bson.M{VisibilityFilter(q.ViewerID)}
	if !q.AuthorID.IsZero() {
		and = append(and, bson.M{"user_id": q.AuthorID})
	}
	if len(and) == 1 {
		return and[0]
	}
	return bson.M{"$and": and}
}

// TrendingFilter is deliberately narrower than VisibilityFilter: hidden posts
// never trend, not even for their author.
func TrendingFilter(now time.Time) bson.M {
	return bson.M{
		"is_deleted": false,
		"is_hidden":  false,
		"created_at": bson.M{"$gte": now.Add(-TrendingWindow)},
	}
}

// derivedCountsStage computes like/comment counts from the current collection
// sizes at query time. Counts are never read from stored fields.
func derivedCountsStage() bson.M {
	return bson.M{
		"likeCount":    bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		"commentCount": bson.M{"$size": bson.M{"$ifNull": bson.A{"$comments", bson.A{}}}},
	}
}

// sortStage maps the feed sort key to its pipeline sort document. Count sorts
// break ties by recency, recency breaks ties by _id for a stable order.
func sortStage(sort string) bson.D {
	switch sort {
	case model.SortLikes:
		return bson.D{{Key: "likeCount", Value: -1}, {Key: "created_at", Value: -1}}
	case model.SortComments:
		return bson.D{{Key: "commentCount", Value: -1}, {Key: "created_at", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}
	}
}

func feedPipeline(q model.FeedQuery) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: StageMatch, Value: BuildFeedFilter(q)}},
		{{Key: StageAddFields, Value: derivedCountsStage()}},
		{{Key: StageSort, Value: sortStage(q.Sort)}},
		{{Key: StageSkip, Value: q.Page * q.PageSize}},
		{{Key: StageLimit, Value: q.PageSize}},
	}
}

func trendingPipeline(now time.Time, limit int64) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: StageMatch, Value: TrendingFilter(now)}},
		{{Key: StageAddFields, Value: derivedCountsStage()}},
		{{Key: StageSort, Value: bson.D{
			{Key: "likeCount", Value: -1},
			{Key: "commentCount", Value: -1},
			{Key: "created_at", Value: -1},
		}}},
		{{Key: StageLimit, Value: limit}},
	}
}

type FeedRepository interface {
	List(ctx context.Context, q model.FeedQuery) ([]model.Post, error)
	Trending(ctx context.Context, limit int64) ([]model.Post, error)
}

type mongoFeedRepo struct {
	col *mongo.Collection
}

func NewMongoFeedRepo(db *mongo.Database) FeedRepository {
	return &mongoFeedRepo{col: db.Collection("posts")}
}

func (r *mongoFeedRepo) List(ctx context.Context, q model.FeedQuery) ([]model.Post, error) {
	return r.aggregate(ctx, feedPipeline(q))
}

func (r *mongoFeedRepo) Trending(ctx context.Context, limit int64) ([]model.Post, error) {
	return r.aggregate(ctx, trendingPipeline(time.Now().UTC(), limit))
}

func (r *mongoFeedRepo) aggregate(ctx context.Context, pipe mongo.Pipeline) ([]model.Post, error) {
	cur, err := r.col.Aggregate(ctx, pipe, options.Aggregate())
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	defer cur.Close(ctx)

	items := []model.Post{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, apperr.Unavailable(err)
	}
	return items, nil
}
