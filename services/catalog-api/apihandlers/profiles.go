package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	usermanagement "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddProfilesAPI(rg *gin.RouterGroup) {
	profilesGroup := rg.Group("/perfiles")
	profilesGroup.Use(mw.GetAndValidateSessionJWT(h.tokens, h.blockedTokens))
	{
		profilesGroup.POST("", mw.RequirePayload(), h.createProfile)
		profilesGroup.GET("", h.listProfiles)
		profilesGroup.PUT("/:id", mw.RequirePayload(), h.updateProfile)
		profilesGroup.DELETE("", h.deleteProfile)
	}
}

func (h *HttpEndpoints) createProfile(c *gin.Context) {
	var req usermanagement.ProfileRequest
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

	profile, err := h.userManagement.CreateProfile(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (h *HttpEndpoints) listProfiles(c *gin.Context) {
	ownerID, err := sessionOwner(c, c.Query("userId"))
	if err != nil {
		writeError(c, err)
		return
	}

	profiles, err := h.userManagement.ListProfiles(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}

func (h *HttpEndpoints) updateProfile(c *gin.Context) {
	id, err := parseObjectID("id", c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	var req usermanagement.ProfileRequest
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

	profile, err := h.userManagement.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *HttpEndpoints) deleteProfile(c *gin.Context) {
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

	if err := h.userManagement.DeleteProfile(c.Request.Context(), ownerID, id); err != nil {
		writeError(c, err)
		return
	}

	slog.Info("profile deleted", slog.String("profileID", id.Hex()), slog.String("accountID", ownerID))
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}
