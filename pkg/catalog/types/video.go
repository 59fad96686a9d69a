package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type Video struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Name        string              `bson:"name" json:"name"`
	YoutubeURL  string              `bson:"youtubeUrl" json:"youtubeUrl"`
	Description string              `bson:"descripcion,omitempty" json:"descripcion,omitempty"`
	OwnerID     string              `bson:"userId" json:"userId"`
	Playlist    *primitive.ObjectID `bson:"playlist,omitempty" json:"playlist,omitempty"`
}

// VideoUpdate carries the optional fields of a video update; nil means unchanged.
type VideoUpdate struct {
	Name       *string
	YoutubeURL *string
}
