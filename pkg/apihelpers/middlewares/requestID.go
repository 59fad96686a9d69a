package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nrednav/cuid2"
)

const (
	HeaderRequestID    = "X-Request-ID"
	CtxKeyRequestID    = "requestID"
	maxRequestIDLength = 64
)

// RequestID propagates or generates a request id and logs one line per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = cuid2.Generate()
		}
		c.Set(CtxKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		slog.Info("request",
			slog.String("requestID", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
