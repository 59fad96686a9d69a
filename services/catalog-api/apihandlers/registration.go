package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	usermanagement "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/user-management"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddRegistrationAPI(rg *gin.RouterGroup) {
	registrationGroup := rg.Group("/registros")
	{
		registrationGroup.POST("", mw.RequirePayload(), h.register)
		registrationGroup.POST("/reenviar", mw.RequirePayload(), h.resendVerification)
	}
	rg.GET("/verify", h.confirmVerification)
}

func (h *HttpEndpoints) register(c *gin.Context) {
	var req usermanagement.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	result, err := h.userManagement.Register(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"verificationToken": result.VerificationToken})
}

type ResendVerificationReq struct {
	Email string `json:"correoElectronico"`
}

func (h *HttpEndpoints) resendVerification(c *gin.Context) {
	var req ResendVerificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	// the new token only travels in the verification email
	if _, err := h.userManagement.ResendVerification(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "verification sent"})
}

func (h *HttpEndpoints) confirmVerification(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token missing"})
		return
	}

	if _, err := h.userManagement.ConfirmVerification(c.Request.Context(), token); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Correo electrónico verificado exitosamente",
		"redirectTo": verifiedRedirect,
	})
}
