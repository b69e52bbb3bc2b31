package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the slice of the identity collaborator's document this engine reads.
// Registration and credentials live elsewhere.
type User struct {
	ID          bson.ObjectID `json:"id"          bson:"_id,omitempty"`
	Username    string        `json:"username"    bson:"username"`
	DisplayName string        `json:"displayName" bson:"display_name"`
	AvatarURL   string        `json:"avatarUrl"   bson:"avatar_url"`
	CreatedAt   time.Time     `json:"createdAt"   bson:"created_at"`
}

// PublicProfile is the minimal author projection attached to feed output.
type PublicProfile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

func (u User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID.Hex(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
