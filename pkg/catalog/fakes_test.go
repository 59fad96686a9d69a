package catalog

import (
	"context"
	"sync"

	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryStore implements both store interfaces over in-memory slices.
type memoryStore struct {
	mu        sync.Mutex
	playlists []catalogTypes.Playlist
	videos    []catalogTypes.Video

	clearErr error
}

func (s *memoryStore) playlistIndex(id primitive.ObjectID) int {
	for i, p := range s.playlists {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *memoryStore) videoIndex(id primitive.ObjectID) int {
	for i, v := range s.videos {
		if v.ID == id {
			return i
		}
	}
	return -1
}

func copyPlaylist(p catalogTypes.Playlist) catalogTypes.Playlist {
	p.Videos = append([]primitive.ObjectID{}, p.Videos...)
	p.AssociatedProfiles = append([]primitive.ObjectID{}, p.AssociatedProfiles...)
	return p
}

func (s *memoryStore) AddPlaylist(ctx context.Context, playlist catalogTypes.Playlist) (catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.playlists {
		if p.Name == playlist.Name {
			return playlist, db.ErrDuplicateKey
		}
	}
	playlist.ID = primitive.NewObjectID()
	s.playlists = append(s.playlists, copyPlaylist(playlist))
	return playlist, nil
}

func (s *memoryStore) FindPlaylistByID(ctx context.Context, id primitive.ObjectID) (catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.playlistIndex(id); i >= 0 {
		return copyPlaylist(s.playlists[i]), nil
	}
	return catalogTypes.Playlist{}, db.ErrNotFound
}

func (s *memoryStore) FindPlaylistByName(ctx context.Context, name string) (catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.playlists {
		if p.Name == name {
			return copyPlaylist(p), nil
		}
	}
	return catalogTypes.Playlist{}, db.ErrNotFound
}

func (s *memoryStore) ListPlaylistsByProfile(ctx context.Context, profileID primitive.ObjectID) ([]catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []catalogTypes.Playlist{}
	for _, p := range s.playlists {
		for _, pr := range p.AssociatedProfiles {
			if pr == profileID {
				res = append(res, copyPlaylist(p))
				break
			}
		}
	}
	return res, nil
}

func (s *memoryStore) UpdatePlaylist(ctx context.Context, id primitive.ObjectID, upd catalogTypes.PlaylistUpdate) (catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.playlistIndex(id)
	if i < 0 {
		return catalogTypes.Playlist{}, db.ErrNotFound
	}
	if upd.Name != nil {
		s.playlists[i].Name = *upd.Name
	}
	if upd.AssociatedProfiles != nil {
		s.playlists[i].AssociatedProfiles = upd.AssociatedProfiles
	}
	if upd.Videos != nil {
		s.playlists[i].Videos = upd.Videos
	}
	return copyPlaylist(s.playlists[i]), nil
}

func (s *memoryStore) AppendVideoToPlaylist(ctx context.Context, playlistID primitive.ObjectID, videoID primitive.ObjectID) (catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.playlistIndex(playlistID)
	if i < 0 {
		return catalogTypes.Playlist{}, db.ErrNotFound
	}
	s.playlists[i].Videos = append(s.playlists[i].Videos, videoID)
	return copyPlaylist(s.playlists[i]), nil
}

func (s *memoryStore) AddVideoToDefaultPlaylist(ctx context.Context, videoID primitive.ObjectID, profileID primitive.ObjectID) (catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.playlists {
		if p.Name != catalogTypes.DEFAULT_PLAYLIST_NAME {
			continue
		}
		s.playlists[i].Videos = append(s.playlists[i].Videos, videoID)
		if !profileID.IsZero() && !containsID(p.AssociatedProfiles, profileID) {
			s.playlists[i].AssociatedProfiles = append(s.playlists[i].AssociatedProfiles, profileID)
		}
		return copyPlaylist(s.playlists[i]), nil
	}
	playlist := catalogTypes.Playlist{
		ID:                 primitive.NewObjectID(),
		Name:               catalogTypes.DEFAULT_PLAYLIST_NAME,
		AssociatedProfiles: []primitive.ObjectID{},
		Videos:             []primitive.ObjectID{videoID},
	}
	if !profileID.IsZero() {
		playlist.AssociatedProfiles = append(playlist.AssociatedProfiles, profileID)
	}
	s.playlists = append(s.playlists, playlist)
	return copyPlaylist(playlist), nil
}

func (s *memoryStore) DeletePlaylist(ctx context.Context, id primitive.ObjectID) (catalogTypes.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.playlistIndex(id)
	if i < 0 {
		return catalogTypes.Playlist{}, db.ErrNotFound
	}
	p := s.playlists[i]
	s.playlists = append(s.playlists[:i], s.playlists[i+1:]...)
	return p, nil
}

func (s *memoryStore) RemoveVideoFromPlaylists(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for i, p := range s.playlists {
		kept := []primitive.ObjectID{}
		for _, v := range p.Videos {
			if v != videoID {
				kept = append(kept, v)
			}
		}
		if len(kept) != len(p.Videos) {
			count++
		}
		s.playlists[i].Videos = kept
	}
	return count, nil
}

func (s *memoryStore) AddVideo(ctx context.Context, video catalogTypes.Video) (catalogTypes.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	video.ID = primitive.NewObjectID()
	s.videos = append(s.videos, video)
	return video, nil
}

func (s *memoryStore) FindVideoByID(ctx context.Context, id primitive.ObjectID) (catalogTypes.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.videoIndex(id); i >= 0 {
		return s.videos[i], nil
	}
	return catalogTypes.Video{}, db.ErrNotFound
}

func (s *memoryStore) FindVideosByIDs(ctx context.Context, ids []primitive.ObjectID) ([]catalogTypes.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []catalogTypes.Video{}
	for _, v := range s.videos {
		if containsID(ids, v.ID) {
			res = append(res, v)
		}
	}
	return res, nil
}

func (s *memoryStore) ListVideosByOwner(ctx context.Context, ownerID string) ([]catalogTypes.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []catalogTypes.Video{}
	for _, v := range s.videos {
		if v.OwnerID == ownerID {
			res = append(res, catalogTypes.Video{ID: v.ID, Name: v.Name, YoutubeURL: v.YoutubeURL})
		}
	}
	return res, nil
}

func (s *memoryStore) UpdateVideo(ctx context.Context, id primitive.ObjectID, ownerID string, upd catalogTypes.VideoUpdate) (catalogTypes.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.videoIndex(id)
	if i < 0 || s.videos[i].OwnerID != ownerID {
		return catalogTypes.Video{}, db.ErrNotFound
	}
	if upd.Name != nil {
		s.videos[i].Name = *upd.Name
	}
	if upd.YoutubeURL != nil {
		s.videos[i].YoutubeURL = *upd.YoutubeURL
	}
	return s.videos[i], nil
}

func (s *memoryStore) SetVideoPlaylist(ctx context.Context, videoID primitive.ObjectID, playlistID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.videoIndex(videoID)
	if i < 0 {
		return db.ErrNotFound
	}
	pid := playlistID
	s.videos[i].Playlist = &pid
	return nil
}

func (s *memoryStore) ClearPlaylistReferences(ctx context.Context, playlistID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearErr != nil {
		return 0, s.clearErr
	}
	var count int64
	for i, v := range s.videos {
		if v.Playlist != nil && *v.Playlist == playlistID {
			s.videos[i].Playlist = nil
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) DeleteVideo(ctx context.Context, id primitive.ObjectID, ownerID string) (catalogTypes.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.videoIndex(id)
	if i < 0 || s.videos[i].OwnerID != ownerID {
		return catalogTypes.Video{}, db.ErrNotFound
	}
	v := s.videos[i]
	s.videos = append(s.videos[:i], s.videos[i+1:]...)
	return v, nil
}

func (s *memoryStore) countByName(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.playlists {
		if p.Name == name {
			n++
		}
	}
	return n
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
