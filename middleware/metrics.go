package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kvboard/metrics"
)

// MetricsRecorder tracks request counts and durations per matched route.
func MetricsRecorder() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		metrics.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(ctx.Writer.Status())).Inc()
		metrics.ReqDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
