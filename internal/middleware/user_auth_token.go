package middleware

import (
	"strings"

	"github.com/micbed86/FancyNote-sub000/pkg/app"
	"github.com/micbed86/FancyNote-sub000/pkg/code"

	"github.com/gin-gonic/gin"
)

// UserAuthToken validates the user JWT and stores its claims under
// "user_token" for app.GetUID.
func UserAuthToken(tm app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			app.NewResponse(c).ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		entity, err := tm.Parse(token)
		if err != nil {
			app.NewResponse(c).ToResponse(code.ErrorInvalidUserAuthToken)
			c.Abort()
			return
		}

		c.Set("user_token", entity)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer ")
		}
		return auth
	}
	if token := c.GetHeader("Token"); token != "" {
		return token
	}
	return c.Query("token")
}
