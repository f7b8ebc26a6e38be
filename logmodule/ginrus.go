package logmodule

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Ginrus returns a gin middleware logging every request with the given prefix
func Ginrus(prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithFields(log.Fields{
			"prefix":  prefix,
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})

		switch {
		case len(c.Errors) > 0:
			entry.Error(c.Errors.String())
		case c.Writer.Status() >= 500:
			entry.Error()
		case c.Writer.Status() >= 400:
			entry.Warn()
		default:
			entry.Info()
		}
	}
}
