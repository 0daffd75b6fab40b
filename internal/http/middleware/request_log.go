package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/seqmeta-backend/internal/platform/ctxutil"
	"github.com/yungbote/seqmeta-backend/internal/platform/logger"
)

// RequestLogger writes one access line per request. Health checks and
// metric scrapes are logged at debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		return func(c *gin.Context) { c.Next() }
	}
	log = log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeOf(c)
		status := c.Writer.Status()
		fields := ctxutil.LogFields(c.Request.Context(),
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil && rd.AuthMethod != "" {
			fields = append(fields, "auth", rd.AuthMethod)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		case isHealthCheck(route):
			log.Debug("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
