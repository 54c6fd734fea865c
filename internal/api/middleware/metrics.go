package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

// Metrics records in-flight requests and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.RequestStarted()

		c.Next()

		metrics.RequestFinished(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
