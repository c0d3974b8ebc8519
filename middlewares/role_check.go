package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/restsoft-app/restsoft-pos/models"
)

// AdminOnly guards the management screens. A signed-in employee who
// lands here is sent back to the salon without an error page, the same
// silent redirect the screens always did.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleAdmin {
			c.Redirect(http.StatusSeeOther, "/salon")
			c.Abort()
			return
		}
		c.Next()
	}
}
