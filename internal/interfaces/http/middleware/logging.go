package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"opendesk/internal/shared/logger"
)

// Logger emits one structured log line per request. Severity follows
// the response status so server errors surface without extra filters.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}

		if staffID, exists := c.Get(ContextStaffID); exists {
			args = append(args, "staff_id", staffID)
		}
		if contactID, exists := c.Get(ContextContactID); exists {
			args = append(args, "contact_id", contactID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed", args...)
		case status >= 400:
			log.Warnw("HTTP request completed", args...)
		default:
			log.Debugw("HTTP request completed", args...)
		}
	}
}
