package middleware

import (
	"net/http"

	"clinicore/models"

	"github.com/gin-gonic/gin"
)

// RequireRoles allows the request through only when the authenticated
// account holds one of the given roles. Must run after JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, ok := c.Get("userRole")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing role claim"})
			return
		}
		role, _ := roleValue.(string)

		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
