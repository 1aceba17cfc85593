package middleware

import (
	"time"

	"github.com/micbed86/FancyNote-sub000/global"
	"github.com/micbed86/FancyNote-sub000/pkg/app"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessLog records one structured line per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", app.GetRequestIP(c)),
			zap.Duration("cost", time.Since(start)),
		}
		if traceID := c.GetString("X-Trace-ID"); traceID != "" {
			fields = append(fields, zap.String("traceId", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		global.Log().Info("access", fields...)
	}
}
