package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apperrors"
	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/db"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VideoRequest struct {
	Name        string `json:"name"`
	YoutubeURL  string `json:"youtubeUrl"`
	Description string `json:"descripcion"`
	OwnerID     string `json:"userId"`
	PlaylistID  string `json:"playlistId"`
}

func (r VideoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.YoutubeURL, validation.Required, is.URL),
		validation.Field(&r.OwnerID, validation.Required),
	)
}

// CreateVideo stores the video and attaches it to the requested playlist.
// When the attachment fails, the created video is returned together with the error.
func (m *Manager) CreateVideo(ctx context.Context, req VideoRequest) (catalogTypes.Video, *catalogTypes.Playlist, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.YoutubeURL = strings.TrimSpace(req.YoutubeURL)
	if err := apperrors.FromValidation(req.Validate()); err != nil {
		return catalogTypes.Video{}, nil, err
	}

	video, err := m.videos.AddVideo(ctx, catalogTypes.Video{
		Name:        req.Name,
		YoutubeURL:  req.YoutubeURL,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     req.OwnerID,
	})
	if err != nil {
		return catalogTypes.Video{}, nil, apperrors.StoreUnavailable("add video", err)
	}

	playlist, err := m.AttachVideoOnCreate(ctx, video.ID, req.PlaylistID, req.OwnerID)
	if err != nil {
		return video, nil, err
	}
	if playlist != nil {
		video.Playlist = &playlist.ID
	}
	return video, playlist, nil
}

func (m *Manager) ListVideos(ctx context.Context, ownerID string) ([]catalogTypes.Video, error) {
	videos, err := m.videos.ListVideosByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.StoreUnavailable("list videos", err)
	}
	return videos, nil
}

// UpdateVideo changes name and URL when they are given and not blank. Videos of other owners are reported as not found.
func (m *Manager) UpdateVideo(ctx context.Context, ownerID string, id primitive.ObjectID, upd catalogTypes.VideoUpdate) (catalogTypes.Video, error) {
	upd.Name = trimmedOrNil(upd.Name)
	upd.YoutubeURL = trimmedOrNil(upd.YoutubeURL)

	video, err := m.videos.UpdateVideo(ctx, id, ownerID, upd)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return catalogTypes.Video{}, ErrVideoNotFound
		}
		return catalogTypes.Video{}, apperrors.StoreUnavailable("update video", err)
	}
	return video, nil
}

// DeleteVideo removes the video and pulls it from every playlist.
func (m *Manager) DeleteVideo(ctx context.Context, ownerID string, id primitive.ObjectID) (catalogTypes.Video, error) {
	video, err := m.videos.DeleteVideo(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return catalogTypes.Video{}, ErrVideoNotFound
		}
		return catalogTypes.Video{}, apperrors.StoreUnavailable("delete video", err)
	}

	if _, err := m.playlists.RemoveVideoFromPlaylists(ctx, id); err != nil {
		slog.Error("failed to remove video from playlists", slog.String("videoID", id.Hex()), slog.String("error", err.Error()))
	}
	return video, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
