package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsurePostIndexes creates the indexes the feed queries sort and filter on.
func EnsurePostIndexes(db *mongo.Database) error {
	_, err := db.Collection("posts").Indexes().CreateMany(
		context.Background(),
		[]mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "created_at", Value: -1}},
				Options: options.Index().SetName("created_desc"),
			},
			{
				Keys: bson.D{
					{Key: "user_id", Value: 1},
					{Key: "created_at", Value: -1},
				},
				Options: options.Index().SetName("author_created_desc"),
			},
			{
				Keys: bson.D{
					{Key: "is_deleted", Value: 1},
					{Key: "is_hidden", Value: 1},
					{Key: "created_at", Value: -1},
				},
				Options: options.Index().SetName("visibility_created_desc"),
			},
		},
	)
	if err != nil {
		return err
	}

	_, err = db.Collection("users").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_username"),
		},
	)
	return err
}
