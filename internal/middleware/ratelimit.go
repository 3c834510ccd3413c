package middleware

import (
	"net/http"
	"strconv"

	"uniconnect/internal/metrics"
	"uniconnect/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit limits callers by token subject, or by client IP before
// AuthRequired has run. Callers whose role is in exempt pass through: the
// gateway carries every user's traffic from one subject, and users are
// limited one by one through the rate-check endpoint instead.
func RateLimit(limiter *ratelimit.Limiter, exempt ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range exempt {
			if role == r {
				c.Next()
				return
			}
		}
		key := "ip:" + c.ClientIP()
		if sub := GetSubject(c); sub != "" {
			key = "sub:" + sub
		}
		d := limiter.Allow(key)
		if !d.Allowed {
			metrics.RateLimitDecisions.WithLabelValues("api", "denied").Inc()
			retry := d.RetryAfterSeconds()
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded", "retry_after_seconds": retry})
			return
		}
		metrics.RateLimitDecisions.WithLabelValues("api", "allowed").Inc()
		c.Next()
	}
}
