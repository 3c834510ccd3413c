package middleware

import (
	"net/http"
	"strings"

	"uniconnect/config"
	"uniconnect/internal/auth"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token and sets subject, role and
// token_user_id in context.
func AuthRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}
		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("subject", claims.Subject)
		c.Set("role", claims.Role)
		c.Set("token_user_id", claims.UserID)
		c.Set("claims", claims)
		c.Next()
	}
}

// RequireRole checks that the caller has one of the allowed roles.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		r := GetRole(c)
		if r == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		for _, a := range allowed {
			if r == a {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}

func GetRole(c *gin.Context) string {
	return c.GetString("role")
}

// GetSubject returns the service name of the caller (must be used after AuthRequired).
func GetSubject(c *gin.Context) string {
	return c.GetString("subject")
}
