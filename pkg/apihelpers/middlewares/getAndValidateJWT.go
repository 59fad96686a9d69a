package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	jwthandling "github.com/Pablocb541/PlayFlixV2-BackEnd/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

const (
	HeaderAuthorization = "Authorization"

	CtxKeyToken          = "token"
	CtxKeyValidatedToken = "validatedToken"
)

// BlockedTokenChecker reports whether a token was logged out.
type BlockedTokenChecker interface {
	IsJwtBlocked(ctx context.Context, token string) (bool, error)
}

// GetAndValidateSessionJWT extracts the session token from the Authorization header, rejects
// logged out tokens and stores the parsed claims under "validatedToken".
func GetAndValidateSessionJWT(tokens *jwthandling.TokenService, blocked BlockedTokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			slog.Warn("no Authorization token found", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		if blocked != nil {
			isBlocked, err := blocked.IsJwtBlocked(c.Request.Context(), token)
			if err != nil {
				slog.Error("failed to check blocked tokens", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			if isBlocked {
				slog.Warn("token logged out")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token logged out"})
				return
			}
		}

		parsedToken, err := tokens.ValidateSessionToken(token)
		if err != nil {
			slog.Warn("token validation failed", slog.String("error", err.Error()))
			msg := "invalid token"
			if errors.Is(err, jwthandling.ErrTokenExpired) {
				msg = "token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		c.Set(CtxKeyToken, token)
		c.Set(CtxKeyValidatedToken, parsedToken)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader(HeaderAuthorization)
	if header == "" {
		return "", errors.New("no Authorization header found")
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", errors.New("no token found in Authorization header")
	}
	return token, nil
}
