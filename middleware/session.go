package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hotelcore/services/logger"
)

const HeaderRequestID = "X-Request-ID"

// RequestMiddleware gán request id và log mỗi request
func RequestMiddleware(log logger.Logger) gin.HandlerFunc {
	log = logger.OrNop(log)
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("requestId", requestID)
		c.Writer.Header().Set(HeaderRequestID, requestID)

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if status >= 500 {
			log.Error("%s %s %d %s req=%s", c.Request.Method, c.FullPath(), status, time.Since(start), requestID)
			return
		}
		log.Debug("%s %s %d %s req=%s", c.Request.Method, c.FullPath(), status, time.Since(start), requestID)
	}
}
