package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Tracer assigns every request a trace id, reusing an incoming
// X-Trace-ID when a gateway already set one.
func Tracer() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		c.Set("X-Trace-ID", traceID)
		c.Header("X-Trace-ID", traceID)
		c.Next()
	}
}
