package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreatePlaylist creates an empty playlist. The name must not be used by another playlist.
func (m *Manager) CreatePlaylist(ctx context.Context, name string, profiles []primitive.ObjectID) (catalogTypes.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalogTypes.Playlist{}, apperrors.NewValidationError(map[string]string{"name": "cannot be blank"})
	}

	_, err := m.playlists.FindPlaylistByName(ctx, name)
	if err == nil {
		return catalogTypes.Playlist{}, ErrDuplicateName
	} else if !errors.Is(err, db.ErrNotFound) {
		return catalogTypes.Playlist{}, apperrors.StoreUnavailable("find playlist", err)
	}

	playlist, err := m.playlists.AddPlaylist(ctx, catalogTypes.Playlist{
		Name:               name,
		AssociatedProfiles: profiles,
		Videos:             []primitive.ObjectID{},
	})
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return catalogTypes.Playlist{}, ErrDuplicateName
		}
		return catalogTypes.Playlist{}, apperrors.StoreUnavailable("add playlist", err)
	}
	return playlist, nil
}

// AddVideo appends the video to the playlist. A video may appear more than once.
func (m *Manager) AddVideo(ctx context.Context, playlistID primitive.ObjectID, videoID primitive.ObjectID) (catalogTypes.Playlist, error) {
	playlist, err := m.playlists.AppendVideoToPlaylist(ctx, playlistID, videoID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return catalogTypes.Playlist{}, ErrPlaylistNotFound
		}
		return catalogTypes.Playlist{}, apperrors.StoreUnavailable("append video", err)
	}
	m.setBackReference(ctx, videoID, playlist.ID)
	return playlist, nil
}

// AttachVideoOnCreate links a newly created video to the playlist named by playlistID.
// An empty playlistID attaches nothing and returns nil. An id that does not resolve to a playlist
// sends the video to the default playlist, which also receives the owner profile.
func (m *Manager) AttachVideoOnCreate(ctx context.Context, videoID primitive.ObjectID, playlistID string, ownerID string) (*catalogTypes.Playlist, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, nil
	}

	if oid, err := primitive.ObjectIDFromHex(playlistID); err == nil {
		playlist, err := m.playlists.AppendVideoToPlaylist(ctx, oid, videoID)
		if err == nil {
			m.setBackReference(ctx, videoID, playlist.ID)
			return &playlist, nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return nil, apperrors.StoreUnavailable("append video", err)
		}
	}

	// owner ids that are not object ids are not recorded on the playlist
	ownerOID, _ := primitive.ObjectIDFromHex(ownerID)
	playlist, err := m.playlists.AddVideoToDefaultPlaylist(ctx, videoID, ownerOID)
	if err != nil {
		return nil, apperrors.StoreUnavailable("add video to default playlist", err)
	}
	slog.Debug("video attached to default playlist", slog.String("videoID", videoID.Hex()), slog.String("requestedPlaylist", playlistID))
	m.setBackReference(ctx, videoID, playlist.ID)
	return &playlist, nil
}

func (m *Manager) setBackReference(ctx context.Context, videoID primitive.ObjectID, playlistID primitive.ObjectID) {
	if err := m.videos.SetVideoPlaylist(ctx, videoID, playlistID); err != nil && !errors.Is(err, db.ErrNotFound) {
		slog.Error("failed to set playlist reference on video", slog.String("videoID", videoID.Hex()), slog.String("error", err.Error()))
	}
}

// DeletePlaylist removes the playlist and then clears the back-reference of videos pointing to it.
// The cleanup is best effort and its failure does not fail the deletion.
func (m *Manager) DeletePlaylist(ctx context.Context, id primitive.ObjectID) (catalogTypes.Playlist, error) {
	playlist, err := m.playlists.DeletePlaylist(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return catalogTypes.Playlist{}, ErrPlaylistNotFound
		}
		return catalogTypes.Playlist{}, apperrors.StoreUnavailable("delete playlist", err)
	}

	count, err := m.videos.ClearPlaylistReferences(ctx, id)
	if err != nil {
		slog.Error("failed to clear playlist references", slog.String("playlistID", id.Hex()), slog.String("error", err.Error()))
	} else if count > 0 {
		slog.Debug("cleared playlist references", slog.String("playlistID", id.Hex()), slog.Int64("count", count))
	}
	return playlist, nil
}

// ListPlaylists returns the playlists the profile is associated with, videos resolved.
func (m *Manager) ListPlaylists(ctx context.Context, profileID primitive.ObjectID) ([]catalogTypes.PlaylistWithVideos, error) {
	playlists, err := m.playlists.ListPlaylistsByProfile(ctx, profileID)
	if err != nil {
		return nil, apperrors.StoreUnavailable("list playlists", err)
	}

	var ids []primitive.ObjectID
	for _, p := range playlists {
		ids = append(ids, p.Videos...)
	}
	byID, err := m.videosByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	res := make([]catalogTypes.PlaylistWithVideos, 0, len(playlists))
	for _, p := range playlists {
		res = append(res, catalogTypes.PlaylistWithVideos{
			ID:                 p.ID,
			Name:               p.Name,
			AssociatedProfiles: p.AssociatedProfiles,
			Videos:             resolveVideos(p.Videos, byID),
		})
	}
	return res, nil
}

// VideosOfPlaylist returns the playlist's videos in list order. Deleted videos are skipped.
func (m *Manager) VideosOfPlaylist(ctx context.Context, id primitive.ObjectID) ([]catalogTypes.Video, error) {
	playlist, err := m.playlists.FindPlaylistByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, apperrors.StoreUnavailable("find playlist", err)
	}

	byID, err := m.videosByID(ctx, playlist.Videos)
	if err != nil {
		return nil, err
	}
	return resolveVideos(playlist.Videos, byID), nil
}

// UpdatePlaylist applies the given fields. A blank name leaves the name unchanged.
func (m *Manager) UpdatePlaylist(ctx context.Context, id primitive.ObjectID, upd catalogTypes.PlaylistUpdate) (catalogTypes.Playlist, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			upd.Name = nil
		} else {
			upd.Name = &name
			existing, err := m.playlists.FindPlaylistByName(ctx, name)
			if err == nil && existing.ID != id {
				return catalogTypes.Playlist{}, ErrDuplicateName
			} else if err != nil && !errors.Is(err, db.ErrNotFound) {
				return catalogTypes.Playlist{}, apperrors.StoreUnavailable("find playlist", err)
			}
		}
	}

	playlist, err := m.playlists.UpdatePlaylist(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrNotFound):
			return catalogTypes.Playlist{}, ErrPlaylistNotFound
		case errors.Is(err, db.ErrDuplicateKey):
			return catalogTypes.Playlist{}, ErrDuplicateName
		}
		return catalogTypes.Playlist{}, apperrors.StoreUnavailable("update playlist", err)
	}
	return playlist, nil
}

func (m *Manager) videosByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]catalogTypes.Video, error) {
	videos, err := m.videos.FindVideosByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.StoreUnavailable("find videos", err)
	}
	byID := make(map[primitive.ObjectID]catalogTypes.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	return byID, nil
}

func resolveVideos(ids []primitive.ObjectID, byID map[primitive.ObjectID]catalogTypes.Video) []catalogTypes.Video {
	res := make([]catalogTypes.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			res = append(res, v)
		}
	}
	return res
}
