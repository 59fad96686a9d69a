package middlewares

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const HeaderAPIKey = "Api-Key"

// HasValidAPIKey accepts requests carrying one of validKeys in the Api-Key header.
func HasValidAPIKey(validKeys []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		keysInHeader := c.Request.Header.Values(HeaderAPIKey)
		if len(keysInHeader) < 1 {
			slog.Warn("API key missing", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "a valid API key missing"})
			return
		}

		for _, k := range keysInHeader {
			for _, vk := range validKeys {
				if vk != "" && subtle.ConstantTimeCompare([]byte(k), []byte(vk)) == 1 {
					c.Next()
					return
				}
			}
		}

		slog.Warn("invalid API key", slog.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "a valid API key missing"})
	}
}
