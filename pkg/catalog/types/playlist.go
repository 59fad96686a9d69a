package types

import "go.mongodb.org/mongo-driver/bson/primitive"

const DEFAULT_PLAYLIST_NAME = "Default Playlist"

type Playlist struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name               string               `bson:"name" json:"name"`
	AssociatedProfiles []primitive.ObjectID `bson:"associatedProfiles" json:"associatedProfiles"`
	Videos             []primitive.ObjectID `bson:"videos" json:"videos"`
}

// PlaylistWithVideos is a playlist whose video ids have been resolved.
type PlaylistWithVideos struct {
	ID                 primitive.ObjectID   `json:"_id"`
	Name               string               `json:"name"`
	AssociatedProfiles []primitive.ObjectID `json:"associatedProfiles"`
	Videos             []Video              `json:"videos"`
}

// PlaylistUpdate carries the optional fields of a playlist update; nil means unchanged.
type PlaylistUpdate struct {
	Name               *string
	AssociatedProfiles []primitive.ObjectID
	Videos             []primitive.ObjectID
}
