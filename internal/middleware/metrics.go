package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/innovatefest/hackathon-api/internal/metrics"
)

// MetricsMiddleware records request durations by route template
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.APIRequestDuration.
			WithLabelValues(path, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
