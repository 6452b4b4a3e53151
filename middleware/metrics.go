package middleware

import (
	"strconv"
	"time"

	"tonotes/utils"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records request counts and latency per route. It
// uses the route template, not the raw URL, to keep label cardinality
// bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		utils.ActiveRequests.Inc()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		utils.ActiveRequests.Dec()
		utils.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
		utils.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}
