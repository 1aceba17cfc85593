package middleware

import (
	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/code"
	"github.com/micbed86/FancyNote-sub000/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter rejects requests once the bucket for the matched URI
// prefix is drained.
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			if bucket.TakeAvailable(1) == 0 {
				app.NewResponse(c).ToResponse(code.ErrorTooManyRequests)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
