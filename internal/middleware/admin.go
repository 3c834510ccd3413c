package middleware

import (
	"net/http"

	"uniconnect/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired admits only operator tokens (role ADMIN) to the /admin
// routes. Gateway tokens may call every engine operation but not stats,
// limiter resets, report review or match rebuilds. Must run after
// AuthRequired; a request with no role is answered 401.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch GetRole(c) {
		case domain.RoleAdmin:
			c.Next()
		case "":
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "operator token required", "role": GetRole(c)})
		}
	}
}
