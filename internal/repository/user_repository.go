package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"feed_workspace/internal/apperr"
	"feed_workspace/model"
)

// UserRepository resolves author ids to minimal public profiles. Profile data
// is owned by the identity collaborator; this engine only reads it.
type UserRepository interface {
	PublicProfiles(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.PublicProfile, error)
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database) UserRepository {
	return &mongoUserRepo{col: db.Collection("users")}
}

func (r *mongoUserRepo) PublicProfiles(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.PublicProfile, error) {
	out := make(map[bson.ObjectID]model.PublicProfile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Unavailable(err)
	}
	defer cur.Close(ctx)

	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Unavailable(err)
	}
	for _, u := range users {
		out[u.ID] = u.Public()
	}
	return out, nil
}
