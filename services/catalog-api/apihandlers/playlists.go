package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddPlaylistsAPI(rg *gin.RouterGroup) {
	playlistsGroup := rg.Group("/playlists")
	playlistsGroup.Use(mw.GetAndValidateSessionJWT(h.tokens, h.blockedTokens))
	{
		playlistsGroup.GET("", h.listPlaylists)
		playlistsGroup.POST("", mw.RequirePayload(), h.createPlaylist)
		playlistsGroup.POST("/videos", mw.RequirePayload(), h.addVideoToPlaylist)
		playlistsGroup.PUT("/:id", mw.RequirePayload(), h.updatePlaylist)
		playlistsGroup.DELETE("/:id", h.deletePlaylist)
		playlistsGroup.GET("/:id/videos", h.getPlaylistVideos)
	}
}

func (h *HttpEndpoints) listPlaylists(c *gin.Context) {
	profileID, err := parseObjectID("userId", c.Query("userId"))
	if err != nil {
		writeError(c, err)
		return
	}

	playlists, err := h.catalog.ListPlaylists(c.Request.Context(), profileID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlists)
}

type CreatePlaylistReq struct {
	Name               string   `json:"name"`
	AssociatedProfiles []string `json:"associatedProfiles"`
}

func (h *HttpEndpoints) createPlaylist(c *gin.Context) {
	var req CreatePlaylistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	profiles, err := parseObjectIDList("associatedProfiles", req.AssociatedProfiles)
	if err != nil {
		writeError(c, err)
		return
	}

	playlist, err := h.catalog.CreatePlaylist(c.Request.Context(), req.Name, profiles)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

type AddVideoToPlaylistReq struct {
	PlaylistID string `json:"playlistId"`
	VideoID    string `json:"videoId"`
}

func (h *HttpEndpoints) addVideoToPlaylist(c *gin.Context) {
	var req AddVideoToPlaylistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	playlistID, err := parseObjectID("playlistId", req.PlaylistID)
	if err != nil {
		writeError(c, err)
		return
	}
	videoID, err := parseObjectID("videoId", req.VideoID)
	if err != nil {
		writeError(c, err)
		return
	}

	playlist, err := h.catalog.AddVideo(c.Request.Context(), playlistID, videoID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

type UpdatePlaylistReq struct {
	Name               *string  `json:"name"`
	AssociatedProfiles []string `json:"associatedProfiles"`
	Videos             []string `json:"videos"`
}

func (h *HttpEndpoints) updatePlaylist(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req UpdatePlaylistReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	profiles, err := parseObjectIDList("associatedProfiles", req.AssociatedProfiles)
	if err != nil {
		writeError(c, err)
		return
	}
	videos, err := parseObjectIDList("videos", req.Videos)
	if err != nil {
		writeError(c, err)
		return
	}

	playlist, err := h.catalog.UpdatePlaylist(c.Request.Context(), id, catalogTypes.PlaylistUpdate{
		Name:               req.Name,
		AssociatedProfiles: profiles,
		Videos:             videos,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

func (h *HttpEndpoints) deletePlaylist(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if _, err := h.catalog.DeletePlaylist(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "playlist deleted"})
}

func (h *HttpEndpoints) getPlaylistVideos(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	videos, err := h.catalog.VideosOfPlaylist(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}
