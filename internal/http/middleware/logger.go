package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"freightapi/internal/utils"
)

// Logger emits one line per request through the shared LogEvent helper,
// keyed by the matched route so log lines aggregate per endpoint rather
// than per raw URL.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		utils.LogEvent(GetRequestID(c), "http", "request",
			fmt.Sprintf("method=%s route=%s status=%d latency_ms=%.3f ip=%s",
				c.Request.Method,
				route,
				c.Writer.Status(),
				float64(latency.Microseconds())/1000.0,
				c.ClientIP(),
			))
	}
}
