package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrDuplicateName    = errors.New("a playlist with this name already exists")
	ErrPlaylistNotFound = fmt.Errorf("playlist %w", apperrors.ErrNotFound)
	ErrVideoNotFound    = fmt.Errorf("video %w", apperrors.ErrNotFound)
)

// PlaylistStore is implemented by the catalog DB service.
type PlaylistStore interface {
	AddPlaylist(ctx context.Context, playlist catalogTypes.Playlist) (catalogTypes.Playlist, error)
	FindPlaylistByID(ctx context.Context, id primitive.ObjectID) (catalogTypes.Playlist, error)
	FindPlaylistByName(ctx context.Context, name string) (catalogTypes.Playlist, error)
	ListPlaylistsByProfile(ctx context.Context, profileID primitive.ObjectID) ([]catalogTypes.Playlist, error)
	UpdatePlaylist(ctx context.Context, id primitive.ObjectID, upd catalogTypes.PlaylistUpdate) (catalogTypes.Playlist, error)
	AppendVideoToPlaylist(ctx context.Context, playlistID primitive.ObjectID, videoID primitive.ObjectID) (catalogTypes.Playlist, error)
	AddVideoToDefaultPlaylist(ctx context.Context, videoID primitive.ObjectID, profileID primitive.ObjectID) (catalogTypes.Playlist, error)
	DeletePlaylist(ctx context.Context, id primitive.ObjectID) (catalogTypes.Playlist, error)
	RemoveVideoFromPlaylists(ctx context.Context, videoID primitive.ObjectID) (int64, error)
}

// VideoStore is implemented by the catalog DB service.
type VideoStore interface {
	AddVideo(ctx context.Context, video catalogTypes.Video) (catalogTypes.Video, error)
	FindVideoByID(ctx context.Context, id primitive.ObjectID) (catalogTypes.Video, error)
	FindVideosByIDs(ctx context.Context, ids []primitive.ObjectID) ([]catalogTypes.Video, error)
	ListVideosByOwner(ctx context.Context, ownerID string) ([]catalogTypes.Video, error)
	UpdateVideo(ctx context.Context, id primitive.ObjectID, ownerID string, upd catalogTypes.VideoUpdate) (catalogTypes.Video, error)
	SetVideoPlaylist(ctx context.Context, videoID primitive.ObjectID, playlistID primitive.ObjectID) error
	ClearPlaylistReferences(ctx context.Context, playlistID primitive.ObjectID) (int64, error)
	DeleteVideo(ctx context.Context, id primitive.ObjectID, ownerID string) (catalogTypes.Video, error)
}

// Manager keeps the relation between playlists and videos consistent.
type Manager struct {
	playlists PlaylistStore
	videos    VideoStore
}

func NewManager(playlists PlaylistStore, videos VideoStore) *Manager {
	return &Manager{
		playlists: playlists,
		videos:    videos,
	}
}

// ParseObjectIDs converts hex ids, reporting the first malformed one.
func ParseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	if ids == nil {
		return nil, nil
	}
	res := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", id, err)
		}
		res = append(res, oid)
	}
	return res, nil
}
