// Package middleware holds the gin middleware chain used by the router.
package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfo injects service identity into the request context for
// downstream handlers and log fields.
func AppInfo(name, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Next()
	}
}
