package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freightapi/internal/metrics"
)

// Metrics records request totals, duration and error counts per endpoint.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		method := c.Request.Method
		statusCode := c.Writer.Status()
		status := strconv.Itoa(statusCode)

		metrics.HTTPRequestsTotal.WithLabelValues(endpoint, status, method).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(endpoint, method).Observe(duration)
		if statusCode >= 400 && statusCode < 600 {
			metrics.HTTPErrorsTotal.WithLabelValues(endpoint, status, method).Inc()
		}
	}
}
