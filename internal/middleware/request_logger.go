package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "request_id"

	RequestIDHeader = "X-Request-ID"
)

// RequestLogger tags every request with an id (reusing an incoming
// X-Request-ID) and logs it once the handler chain has finished. Errors
// attached with c.Error are logged at error level.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		entry := logger.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		})
		if len(c.Errors) > 0 {
			entry.WithError(c.Errors.Last()).Error("request failed")
			return
		}
		entry.Info("request handled")
	}
}
