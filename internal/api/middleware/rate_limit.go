package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/statsight/sportsdash/internal/services"
	"github.com/statsight/sportsdash/pkg/utils"
)

// RateLimit rejects requests once the client IP exhausts its window.
// Throttled requests never reach the handler, so they do no cache or
// upstream work.
func RateLimit(limiter *services.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := limiter.Allow(c.ClientIP())
		if !allowed {
			utils.SendRateLimited(c, retryAfter)
			c.Abort()
			return
		}
		c.Next()
	}
}
