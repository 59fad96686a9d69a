package apihandlers

import (
	"log/slog"
	"net/http"

	mw "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/apihelpers/middlewares"
	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddAuthenticationAPI(rg *gin.RouterGroup) {
	rg.POST("/login", mw.RequirePayload(), h.loginWithEmail)
	rg.POST("/loginUsuarios", mw.RequirePayload(), h.loginAccountWithPin)
	rg.POST("/loginPin", mw.RequirePayload(), h.loginProfileWithPin)
	rg.POST("/logout", mw.GetAndValidateSessionJWT(h.tokens, h.blockedTokens), h.logout)
}

type LoginWithEmailReq struct {
	Email    string `json:"correoElectronico"`
	Password string `json:"contraseña"`
	Code     string `json:"codigoUnico"`
}

func (h *HttpEndpoints) loginWithEmail(c *gin.Context) {
	var req LoginWithEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	result, err := h.userManagement.Login(c.Request.Context(), req.Email, req.Password, req.Code)
	if err != nil {
		writeError(c, err)
		return
	}

	slog.Info("user logged in", slog.String("accountID", result.AccountID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Inicio de sesión exitoso",
		"token":   result.Token,
		"id":      result.AccountID,
		"pin":     result.Pin,
	})
}

type AccountPinLoginReq struct {
	Pin int `json:"pin"`
}

func (h *HttpEndpoints) loginAccountWithPin(c *gin.Context) {
	var req AccountPinLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	if err := h.userManagement.LoginAccountByPin(c.Request.Context(), req.Pin); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "PIN correcto",
	})
}

type ProfilePinLoginReq struct {
	Pin     string `json:"pin"`
	OwnerID string `json:"userId"`
}

func (h *HttpEndpoints) loginProfileWithPin(c *gin.Context) {
	var req ProfilePinLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot bind request"})
		return
	}

	profile, err := h.userManagement.LoginProfileByPin(c.Request.Context(), req.Pin, req.OwnerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "PIN correcto",
		"profileId":   profile.ID.Hex(),
		"redirectURL": profileRedirect,
	})
}

func (h *HttpEndpoints) logout(c *gin.Context) {
	token := c.MustGet(mw.CtxKeyValidatedToken).(*jwthandling.SessionClaims)
	tokenString := c.MustGet(mw.CtxKeyToken).(string)

	if err := h.blockedTokens.AddBlockedJwt(c.Request.Context(), tokenString, token.ExpiresAt.Time); err != nil {
		slog.Error("failed to add blocked JWT", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	slog.Info("user logged out", slog.String("accountID", token.AccountID))
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}
