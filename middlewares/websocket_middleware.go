package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/utils"
)

// WebSocketAuthMiddleware reads the token from the query string since
// browser websockets cannot set an Authorization header.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("name", claims.Name)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
