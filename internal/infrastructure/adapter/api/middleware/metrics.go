package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiarash-moradi/mlm-dashboard/internal/infrastructure/adapter/metrics"
)

// Metrics middleware records request counts and latency per route.
// The route template is used as the label, not the raw path, to keep
// cardinality bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequests.WithLabelValues(route, method, status).Inc()
		m.HTTPLatency.WithLabelValues(route, method).Observe(time.Since(start).Seconds())

		if c.Writer.Status() >= 500 {
			m.Errors.WithLabelValues("http").Inc()
		}
	}
}
