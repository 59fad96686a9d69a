package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	"github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog"
	catalogTypes "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/catalog/types"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddVideosAPI(rg *gin.RouterGroup) {
	videosGroup := rg.Group("/videos")
	videosGroup.Use(mw.GetAndValidateSessionJWT(h.tokens, h.blockedTokens))
	{
		videosGroup.POST("", mw.RequirePayload(), h.createVideo)
		videosGroup.GET("", h.listVideos)
		videosGroup.PUT("/:id", mw.RequirePayload(), h.updateVideo)
		videosGroup.DELETE("", h.deleteVideo)
	}
}

func (h *HttpEndpoints) createVideo(c *gin.Context) {
	var req catalog.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}
	ownerID, err := sessionOwner(c, req.OwnerID)
	if err != nil {
		writeError(c, err)
		return
	}
	req.OwnerID = ownerID

	video, playlist, err := h.catalog.CreateVideo(c.Request.Context(), req)
	if err != nil {
		if !video.ID.IsZero() {
			slog.Error("video created but not attached to a playlist", slog.String("videoID", video.ID.Hex()))
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"video":    video,
		"playlist": playlist,
	})
}

func (h *HttpEndpoints) listVideos(c *gin.Context) {
	ownerID, err := sessionOwner(c, c.Query("userId"))
	if err != nil {
		writeError(c, err)
		return
	}

	videos, err := h.catalog.ListVideos(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}

type UpdateVideoReq struct {
	Name       *string `json:"name"`
	YoutubeURL *string `json:"youtubeUrl"`
}

func (h *HttpEndpoints) updateVideo(c *gin.Context) {
	ownerID, err := sessionOwner(c, "")
	if err != nil {
		writeError(c, err)
		return
	}
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req UpdateVideoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	video, err := h.catalog.UpdateVideo(c.Request.Context(), ownerID, id, catalogTypes.VideoUpdate{
		Name:       req.Name,
		YoutubeURL: req.YoutubeURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *HttpEndpoints) deleteVideo(c *gin.Context) {
	ownerID, err := sessionOwner(c, "")
	if err != nil {
		writeError(c, err)
		return
	}
	id, err := parseObjectID("id", c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if _, err := h.catalog.DeleteVideo(c.Request.Context(), ownerID, id); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}
