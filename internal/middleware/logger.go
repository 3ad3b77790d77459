package middleware

import (
	"time"

	"github.com/PsySom/ready-set-prompt/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger middleware logs HTTP requests and threads a request ID through
// the request context so downstream log lines and problem responses can
// correlate. The client-supplied X-Request-ID is honoured when present.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Ctx(c.Request.Context()).Info("http request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		)
	}
}
