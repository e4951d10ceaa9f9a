// Package middleware provides gin middleware for the HTTP surface.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivevault/drivevault/pkg/log"
)

// RequestLogMiddleware logs one structured line per request.
func RequestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		l := log.Logger()
		l.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
